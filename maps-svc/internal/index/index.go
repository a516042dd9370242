package index

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
)

var ErrDocumentNotFound = errors.New("document not found")

// Index is a document store with term and geo-distance search.
type Index interface {
	Search(ctx context.Context, index string, query Query) ([]Hit, error)
	Index(ctx context.Context, index, id string, doc any) (string, error)
	Update(ctx context.Context, index, id string, partial any) error
	Get(ctx context.Context, index, id string) (json.RawMessage, error)
	Bulk(ctx context.Context, index string, items []BulkItem) BulkResult
}

// Query matches documents whose fields equal every term and, when Geo is
// set, whose geo field lies within the given distance.
type Query struct {
	Terms []Term
	Geo   *GeoDistance
	Size  int
}

type Term struct {
	Field string
	Value string
}

type GeoDistance struct {
	Field        string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

type Hit struct {
	ID       string
	Source   json.RawMessage
	Distance float64 // meters from the geo query centre, 0 without one
}

type BulkItem struct {
	ID  string
	Doc any
}

type BulkResult struct {
	Succeeded int
	Failed    int
	Errors    []error
}

// MaxGeoLatitude bounds the latitudes a geo field can be searched by (the Web
// Mercator range GEOADD accepts).
const MaxGeoLatitude = 85.05112878

func GeoIndexable(lat, lon float64) bool {
	return lat >= -MaxGeoLatitude && lat <= MaxGeoLatitude && lon >= -180 && lon <= 180
}

// NearbyQuery matches cached nearby-search records for keyword whose search
// centre lies within radiusMeters of (lat, lon). Centres outside the geo range
// match only records stored for exactly that centre.
func NearbyQuery(lat, lon float64, radiusMeters int, keyword string) Query {
	if !GeoIndexable(lat, lon) {
		return Query{
			Terms: []Term{
				{Field: "keyword", Value: keyword},
				{Field: "latitude", Value: strconv.FormatFloat(lat, 'f', -1, 64)},
				{Field: "longitude", Value: strconv.FormatFloat(lon, 'f', -1, 64)},
			},
		}
	}
	return Query{
		Terms: []Term{{Field: "keyword", Value: keyword}},
		Geo: &GeoDistance{
			Field:        "location",
			Latitude:     lat,
			Longitude:    lon,
			RadiusMeters: float64(radiusMeters),
		},
	}
}

func ByIdentifierQuery(field, value string) Query {
	return Query{
		Terms: []Term{{Field: field, Value: value}},
	}
}
