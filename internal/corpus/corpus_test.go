package corpus

import (
	"context"
	"database/sql"
	"math"
	"strings"
	"testing"

	"github.com/lexgate/lexgate/internal/db"
	"github.com/lexgate/lexgate/internal/errors"
)

const ndaTemplate = `MUTUAL NON-DISCLOSURE AGREEMENT
This Agreement is entered into by and between the Disclosing Party and
the Receiving Party. Confidential Information means any non-public
information disclosed by either party. The Receiving Party shall
protect Confidential Information with reasonable care and shall not
disclose it to third parties. Obligations survive termination for a
period of three years. Governing law is the law of the State of
Delaware. IN WITNESS WHEREOF the parties execute this Agreement.`

const msaTemplate = `MASTER SERVICES AGREEMENT
Contractor shall perform the services described in each Statement of
Work. Client shall pay invoices within thirty days. Deliverables are
accepted upon written approval. Either party may terminate for
material breach with thirty days notice. Limitation of liability:
total liability shall not exceed fees paid.`

func testStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database), database
}

func TestVectorize(t *testing.T) {
	vec := Vectorize("The party shall indemnify the other party.")
	if vec == nil {
		t.Fatal("nil vector")
	}
	if _, ok := vec["the"]; ok {
		t.Error("stopword kept in vector")
	}
	if vec["party"] <= vec["indemnify"] {
		t.Errorf("repeated term not weighted higher: %v", vec)
	}
	var sum float64
	for _, w := range vec {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("weights sum to %f, want 1", sum)
	}
}

func TestVectorize_Empty(t *testing.T) {
	if vec := Vectorize("the of and 123 !!!"); vec != nil {
		t.Errorf("Vectorize(stopwords only) = %v, want nil", vec)
	}
}

func TestCosine(t *testing.T) {
	a := Vectorize("confidential information shall remain confidential")
	if got := Cosine(a, a); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("Cosine(a, a) = %f, want 1", got)
	}
	b := Vectorize("payment invoice deliverable acceptance")
	if got := Cosine(a, b); got != 0 {
		t.Errorf("Cosine(disjoint) = %f, want 0", got)
	}
	if got := Cosine(a, nil); got != 0 {
		t.Errorf("Cosine(a, nil) = %f, want 0", got)
	}
}

func TestIngest(t *testing.T) {
	store, database := testStore(t)
	ctx := context.Background()

	tpl, err := store.Ingest(ctx, "Standard NDA", ndaTemplate, "")
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if tpl.ID == "" {
		t.Error("no id assigned")
	}
	if tpl.ContractType != "Non-Disclosure Agreement" {
		t.Errorf("ContractType = %q, want detected NDA", tpl.ContractType)
	}

	stored, err := db.GetTemplateByName(database, db.NormalizeName("Standard NDA"))
	if err != nil {
		t.Fatalf("stored template not retrievable: %v", err)
	}
	if len(stored.Vector) == 0 {
		t.Error("stored vector is empty")
	}
}

func TestIngest_Validation(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if _, err := store.Ingest(ctx, "  ", ndaTemplate, ""); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("blank name error = %v", err)
	}
	if _, err := store.Ingest(ctx, "Empty", "the of and", ""); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("unusable text error = %v", err)
	}
}

func TestSimilarity_RanksLikeDocumentsHigher(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	for name, text := range map[string]string{
		"NDA": ndaTemplate, "MSA": msaTemplate,
	} {
		if _, err := store.Ingest(ctx, name, text, ""); err != nil {
			t.Fatalf("Ingest(%s) failed: %v", name, err)
		}
	}

	ndaLike := strings.ReplaceAll(ndaTemplate, "three years", "five years")
	simNDA, ok := store.Similarity(ctx, ndaLike)
	if !ok {
		t.Fatal("similarity unavailable with populated corpus")
	}
	simCode, ok := store.Similarity(ctx, "import os\nclass Runner:\n    def run(self):\n        return os.environ")
	if !ok {
		t.Fatal("similarity unavailable for code text")
	}
	if simNDA <= simCode {
		t.Errorf("simNDA = %f <= simCode = %f", simNDA, simCode)
	}
	if simNDA < 0.5 {
		t.Errorf("near-duplicate NDA scored %f", simNDA)
	}
}

func TestSimilarity_Degrades(t *testing.T) {
	ctx := context.Background()

	var nilStore *Store
	if _, ok := nilStore.Similarity(ctx, "anything"); ok {
		t.Error("nil store reported availability")
	}

	store, _ := testStore(t)
	if _, ok := store.Similarity(ctx, ndaTemplate); ok {
		t.Error("empty corpus reported availability")
	}

	if _, err := store.Ingest(ctx, "NDA", ndaTemplate, ""); err != nil {
		t.Fatal(err)
	}
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, ok := store.Similarity(canceled, ndaTemplate); ok {
		t.Error("canceled context reported availability")
	}
}

func TestListAndDelete(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	tpl, err := store.Ingest(ctx, "NDA", ndaTemplate, "")
	if err != nil {
		t.Fatal(err)
	}
	list, err := store.List(ctx, "")
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %v, %v", list, err)
	}
	if err := store.Delete(ctx, tpl.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	list, err = store.List(ctx, "")
	if err != nil || len(list) != 0 {
		t.Fatalf("List after delete = %v, %v", list, err)
	}
}
