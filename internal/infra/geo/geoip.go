package geo

import (
	"net"

	"github.com/oschwald/geoip2-golang"
)

// GeoIP resolves client IPs against a MaxMind country (or city) database.
type GeoIP struct {
	db *geoip2.Reader
}

func Open(path string) (*GeoIP, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &GeoIP{db: db}, nil
}

// CountryISO returns the ISO 3166-1 alpha-2 code, or "" for private and
// unknown addresses.
func (g *GeoIP) CountryISO(ip net.IP) (string, error) {
	if ip == nil || ip.IsPrivate() || ip.IsLoopback() {
		return "", nil
	}
	rec, err := g.db.Country(ip)
	if err != nil {
		return "", err
	}
	return rec.Country.IsoCode, nil
}

func (g *GeoIP) Close() error {
	return g.db.Close()
}
