package places

// Summary is one entry from a nearby-search page.
type Summary struct {
	PlaceID          string
	Name             string
	Latitude         float64
	Longitude        float64
	Vicinity         string
	Types            []string
	Rating           *float64
	UserRatingsTotal *int
	PriceLevel       *int
	BusinessStatus   string
	OpenNow          *bool
	Photos           []PhotoRef
}

// PhotoRef identifies a fetchable photo at the provider.
type PhotoRef struct {
	Reference    string
	Width        int
	Height       int
	Attributions []string
}

// Details carries the extended fields from a place-details call.
type Details struct {
	Phone            string
	Website          string
	OpeningHours     []string
	Reviews          []Review
	EditorialSummary string
	BusinessStatus   string
	Photos           []PhotoRef
}

type Review struct {
	Author string
	Rating float64
	Text   string
}

// PhotoData is the raw image payload returned by the photo endpoint.
type PhotoData struct {
	Bytes       []byte
	ContentType string
}

type nearbyResponse struct {
	Results       []placeResult `json:"results"`
	NextPageToken string        `json:"next_page_token"`
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message"`
}

type detailsResponse struct {
	Result       detailsResult `json:"result"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
}

type placeResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Vicinity string `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Types            []string      `json:"types"`
	Rating           *float64      `json:"rating"`
	UserRatingsTotal *int          `json:"user_ratings_total"`
	PriceLevel       *int          `json:"price_level"`
	BusinessStatus   string        `json:"business_status"`
	OpeningHours     *openingHours `json:"opening_hours"`
	Photos           []photoResult `json:"photos"`
}

type detailsResult struct {
	FormattedPhoneNumber string        `json:"formatted_phone_number"`
	Website              string        `json:"website"`
	OpeningHours         *openingHours `json:"opening_hours"`
	Reviews              []struct {
		AuthorName string  `json:"author_name"`
		Rating     float64 `json:"rating"`
		Text       string  `json:"text"`
	} `json:"reviews"`
	EditorialSummary *struct {
		Overview string `json:"overview"`
	} `json:"editorial_summary"`
	BusinessStatus string        `json:"business_status"`
	Photos         []photoResult `json:"photos"`
}

type openingHours struct {
	OpenNow     *bool    `json:"open_now"`
	WeekdayText []string `json:"weekday_text"`
}

type photoResult struct {
	PhotoReference   string   `json:"photo_reference"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	HTMLAttributions []string `json:"html_attributions"`
}

func (p placeResult) toSummary() Summary {
	s := Summary{
		PlaceID:          p.PlaceID,
		Name:             p.Name,
		Latitude:         p.Geometry.Location.Lat,
		Longitude:        p.Geometry.Location.Lng,
		Vicinity:         p.Vicinity,
		Types:            p.Types,
		Rating:           p.Rating,
		UserRatingsTotal: p.UserRatingsTotal,
		PriceLevel:       p.PriceLevel,
		BusinessStatus:   p.BusinessStatus,
	}
	if p.OpeningHours != nil {
		s.OpenNow = p.OpeningHours.OpenNow
	}
	for _, ph := range p.Photos {
		s.Photos = append(s.Photos, PhotoRef{
			Reference:    ph.PhotoReference,
			Width:        ph.Width,
			Height:       ph.Height,
			Attributions: ph.HTMLAttributions,
		})
	}
	return s
}
