package model

// ================ Config ================
type StoreConfig struct {
	KeyPrefix string `envconfig:"STORE_KEY_PREFIX" default:"shopeasy"`
	TTL       string `envconfig:"STORE_TTL" default:"0s"`
	TaxRate   string `envconfig:"STORE_TAX_RATE" default:"0.08"`
}

type SearchConfig struct {
	MaxSuggestions int    `envconfig:"SEARCH_MAX_SUGGESTIONS" default:"8"`
	ResultsPath    string `envconfig:"SEARCH_RESULTS_PATH" default:"/search.html"`
}

type AccountConfig struct {
	SimulatedLatency string `envconfig:"ACCOUNT_SIMULATED_LATENCY" default:"0s"`
}

type HTTPConfig struct {
	Addr          string `envconfig:"HTTP_ADDR" default:":3000"`
	ClientHeader  string `envconfig:"HTTP_CLIENT_HEADER" default:"X-Client-ID"`
	DefaultClient string `envconfig:"HTTP_DEFAULT_CLIENT" default:"anonymous"`
}
