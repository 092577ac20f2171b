package restrictions

import (
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// CDN headers carrying the visitor's ISO 3166-1 alpha-2 country.
var countryHeaders = []string{"CF-IPCountry", "X-Country-Code", "CloudFront-Viewer-Country"}

// GeoLocator maps an IP to an ISO 3166-1 alpha-2 code ("" when unknown).
type GeoLocator interface {
	CountryISO(ip net.IP) (string, error)
}

// Request is what the resolver needs from an incoming checkout call.
type Request struct {
	ProfileCountry string
	ClientIP       string
	Header         http.Header
}

type Resolution struct {
	Country string
	Source  string
}

type Resolver struct {
	geo            GeoLocator
	defaultCountry string
}

// NewResolver builds a resolver. geo may be nil when no database is configured.
func NewResolver(geo GeoLocator, defaultCountry string) *Resolver {
	return &Resolver{geo: geo, defaultCountry: strings.TrimSpace(defaultCountry)}
}

// Resolve picks the first available country: profile, CDN header, GeoIP,
// Accept-Language region, then the configured default.
func (r *Resolver) Resolve(req Request) Resolution {
	if c := strings.TrimSpace(req.ProfileCountry); c != "" {
		return Resolution{Country: c, Source: SourceProfile}
	}

	for _, h := range countryHeaders {
		if name := CountryName(req.Header.Get(h)); name != "" {
			return Resolution{Country: name, Source: SourceCDNHeader}
		}
	}

	if r.geo != nil {
		if ip := net.ParseIP(strings.TrimSpace(req.ClientIP)); ip != nil {
			if iso, err := r.geo.CountryISO(ip); err == nil {
				if name := CountryName(iso); name != "" {
					return Resolution{Country: name, Source: SourceGeoIP}
				}
			}
		}
	}

	if name := regionFromAcceptLanguage(req.Header.Get("Accept-Language")); name != "" {
		return Resolution{Country: name, Source: SourceAcceptLanguage}
	}

	return Resolution{Country: r.defaultCountry, Source: SourceDefault}
}

// CountryName converts an ISO alpha-2 code to its English name. Unknown or
// reserved codes (Cloudflare's XX and T1 among them) yield "".
func CountryName(iso string) string {
	iso = strings.ToUpper(strings.TrimSpace(iso))
	if len(iso) != 2 || iso == "XX" || iso == "T1" {
		return ""
	}
	region, err := language.ParseRegion(iso)
	if err != nil || !region.IsCountry() {
		return ""
	}
	return display.English.Regions().Name(region)
}

// regionFromAcceptLanguage only trusts explicit regions ("ar-SY"), never
// the likely region guessed for a bare language.
func regionFromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	for _, tag := range tags {
		region, conf := tag.Region()
		if conf != language.Exact || !region.IsCountry() {
			continue
		}
		if name := display.English.Regions().Name(region); name != "" {
			return name
		}
	}
	return ""
}
