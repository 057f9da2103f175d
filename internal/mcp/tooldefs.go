package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Names follow the "type_action" pattern so clients can
// group document tools and template tools.

var classifyToolDef = mcp.NewTool("document_classify",
	mcp.WithDescription("Classify a document as contract, legal_document, or non_legal. Returns the verdict with score, confidence, and the signals behind the decision. Never errors on document content."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Full plain text of the document to classify"),
	),
)

var analyzeToolDef = mcp.NewTool("document_analyze",
	mcp.WithDescription("Run the full contract analysis pipeline: admission gate, clause extraction and annotation, red-flag scan, contract type identification, template deviation check, and recommendations. Rejects non-contracts unless allow_non_legal is set."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Full plain text of the document to analyze"),
	),
	mcp.WithBoolean("allow_non_legal",
		mcp.Description("Analyze the document even when the admission gate rejects it"),
	),
	mcp.WithNumber("max_clauses",
		mcp.Description("Cap on the number of clauses to annotate (default from config)"),
	),
)

var redFlagsToolDef = mcp.NewTool("document_redflags",
	mcp.WithDescription("Scan a document for risky contract language and return the matched red flags with severity counts. Does not run the admission gate."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Full plain text of the document to scan"),
	),
)

var ingestToolDef = mcp.NewTool("template_ingest",
	mcp.WithDescription("Add a reference template to the corpus used for semantic corroboration and deviation analysis. Names are unique after whitespace and case normalization."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Unique template name"),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Full plain text of the template"),
	),
	mcp.WithString("contract_type",
		mcp.Description("Contract type label (nda, service, employment); detected from the text when omitted"),
	),
)

var listToolDef = mcp.NewTool("template_list",
	mcp.WithDescription("List ingested templates, newest first, optionally filtered by contract type."),
	mcp.WithString("contract_type",
		mcp.Description("Only return templates of this contract type"),
	),
)

var deleteToolDef = mcp.NewTool("template_delete",
	mcp.WithDescription("Delete a template from the corpus by id."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Template id as returned by template_ingest or template_list"),
	),
)
