package knowledge

import _ "embed"

//go:embed risk_rules.md
var defaultRules []byte
