package assets

import _ "embed"

// ProvidersData holds the raw JSON catalog of known LLM providers.
//
//go:embed providers.json
var ProvidersData []byte
