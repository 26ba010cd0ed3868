package retailquery

import (
	"net/url"
	"strings"
)

type Retailer string

const (
	RetailerAmazon  Retailer = "amazon"
	RetailerWayfair Retailer = "wayfair"
	RetailerTarget  Retailer = "target"
	RetailerIKEA    Retailer = "ikea"
)

// Retailers lists every retailer Links produces, in display order
var Retailers = []Retailer{RetailerAmazon, RetailerWayfair, RetailerTarget, RetailerIKEA}

// Affiliate carries partner identifiers appended to outbound links
type Affiliate struct {
	AmazonTag  string
	WayfairRef string
}

type Link struct {
	Retailer Retailer `json:"retailer"`
	URL      string   `json:"url"`
}

// SearchURL returns the retailer search page for query, or "" for an unknown retailer
func SearchURL(r Retailer, query string, aff Affiliate) string {
	query = strings.TrimSpace(query)
	params := url.Values{}

	var base string
	switch r {
	case RetailerAmazon:
		base = "https://www.amazon.com/s"
		params.Set("k", query)
		if aff.AmazonTag != "" {
			params.Set("tag", aff.AmazonTag)
		}
	case RetailerWayfair:
		base = "https://www.wayfair.com/keyword.php"
		params.Set("keyword", query)
		if aff.WayfairRef != "" {
			params.Set("refid", aff.WayfairRef)
		}
	case RetailerTarget:
		base = "https://www.target.com/s"
		params.Set("searchTerm", query)
	case RetailerIKEA:
		base = "https://www.ikea.com/us/en/search/"
		params.Set("q", query)
	default:
		return ""
	}

	return base + "?" + params.Encode()
}

// Links returns a search link for every known retailer
func Links(query string, aff Affiliate) []Link {
	links := make([]Link, 0, len(Retailers))
	for _, r := range Retailers {
		links = append(links, Link{Retailer: r, URL: SearchURL(r, query, aff)})
	}
	return links
}
