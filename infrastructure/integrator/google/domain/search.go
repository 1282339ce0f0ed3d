package googledomain

// SearchRequest é o corpo do googleAds:search
type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []Row  `json:"results"`
	NextPageToken string `json:"nextPageToken"`
	FieldMask     string `json:"fieldMask"`
}

// Row é uma linha do relatório GAQL. Campos int64 chegam como string no JSON.
type Row struct {
	Customer Customer `json:"customer"`
	Campaign Campaign `json:"campaign"`
	Metrics  Metrics  `json:"metrics"`
	Segments Segments `json:"segments"`
}

type Customer struct {
	ResourceName string `json:"resourceName"`
	ID           string `json:"id"`
	CurrencyCode string `json:"currencyCode"`
	TimeZone     string `json:"timeZone"`
}

type Campaign struct {
	ResourceName           string `json:"resourceName"`
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Status                 string `json:"status"`
	AdvertisingChannelType string `json:"advertisingChannelType"`
}

type Metrics struct {
	Impressions int64   `json:"impressions,string"`
	Clicks      int64   `json:"clicks,string"`
	CostMicros  int64   `json:"costMicros,string"`
	Conversions float64 `json:"conversions"`
	Ctr         float64 `json:"ctr"`
}

type Segments struct {
	Date string `json:"date"`
}
