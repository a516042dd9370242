package service

import (
	"net/url"

	"github.com/skip2/go-qrcode"
)

const DefaultPlaceURL = "https://www.google.com/maps/place/?q=place_id:"

type DefaultQRGenerator struct {
	BaseURL string
}

// Generate encodes the map link of the place as a PNG.
func (g DefaultQRGenerator) Generate(placeID string) ([]byte, error) {
	base := g.BaseURL
	if base == "" {
		base = DefaultPlaceURL
	}
	return qrcode.Encode(base+url.QueryEscape(placeID), qrcode.Medium, 256)
}
