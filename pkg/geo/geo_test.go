package geo

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNormalizePostalCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"10115", "10115", true},
		{"  sw1a   1aa ", "SW1A 1AA", true},
		{"1234-567", "1234-567", true},
		{"", "", false},
		{"   ", "", false},
		{"10115!", "", false},
		{"12345678901", "", false},
		{"Straße 1", "", false},
	}

	for _, c := range cases {
		got, ok := NormalizePostalCode(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("NormalizePostalCode(%q) => %q, %t, want %q, %t", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeCountryCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"de", "DE", true},
		{" DE ", "DE", true},
		{"DEU", "DE", true},
		{"Germany", "DE", true},
		{"  united   states ", "US", true},
		{"Österreich", "AT", true},
		{"usa", "US", true},
		{"", "", false},
		{"D1", "", false},
		{"Atlantis", "", false},
	}

	for _, c := range cases {
		got, ok := NormalizeCountryCode(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("NormalizeCountryCode(%q) => %q, %t, want %q, %t", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestDistance(t *testing.T) {
	is := is.New(t)
	berlin := Point{Latitude: 52.5200, Longitude: 13.4050}
	hamburg := Point{Latitude: 53.5511, Longitude: 9.9937}

	d := Distance(berlin, hamburg)
	// roughly 255km
	is.True(d > 250_000 && d < 260_000)
	is.Equal(Distance(berlin, berlin), 0.0)
	is.True(math.Abs(Distance(berlin, hamburg)-Distance(hamburg, berlin)) < 1e-6)
}

func TestBoundingBox(t *testing.T) {
	is := is.New(t)
	center := Point{Latitude: 52.52, Longitude: 13.405}
	box := BoundingBox(center, 25_000)
	is.True(box.Contains(center))

	// Everything within the radius must be inside the box.
	for _, p := range []Point{
		{Latitude: 52.52 + 0.22, Longitude: 13.405},
		{Latitude: 52.52, Longitude: 13.405 + 0.36},
		{Latitude: 52.52 - 0.22, Longitude: 13.405 - 0.36},
	} {
		if Distance(center, p) <= 25_000 {
			is.True(box.Contains(p))
		}
	}
	is.True(!box.Contains(Point{Latitude: 53.5511, Longitude: 9.9937}))

	polar := BoundingBox(Point{Latitude: 89.9, Longitude: 0}, 50_000)
	is.Equal(polar.MaxLatitude, 90.0)
	is.Equal(polar.MinLongitude, -180.0)
}

func TestKilometersToMeters(t *testing.T) {
	is := is.New(t)
	m, ok := KilometersToMeters(25)
	is.True(ok)
	is.Equal(m, 25_000.0)
	for _, km := range []float64{math.NaN(), math.Inf(1), -1} {
		_, ok := KilometersToMeters(km)
		is.True(!ok)
	}
}

func TestReadCentroidsGeoNames(t *testing.T) {
	is := is.New(t)
	dump := strings.Join([]string{
		"DE\t10115\tBerlin\tBerlin\tBE\t\t00\tBerlin, Stadt\t11000000\t52.5323\t13.3846\t4",
		"DE\t20095\tHamburg\tHamburg\tHH\t\t00\tHamburg, Freie und Hansestadt\t02000000\t53.5511\t9.9937\t4",
		"DE\t??\tBroken\t\t\t\t\t\t\tx\ty\t1",
	}, "\n")

	var got []Centroid
	skipped, err := ReadCentroids(strings.NewReader(dump), func(c Centroid) error {
		got = append(got, c)
		return nil
	})
	is.NoErr(err)
	is.Equal(skipped, 1)
	is.Equal(len(got), 2)
	is.Equal(got[0].CountryCode, "DE")
	is.Equal(got[0].PostalCode, "10115")
	is.Equal(got[0].PlaceName, "Berlin")
	is.Equal(got[1].Point, Point{Latitude: 53.5511, Longitude: 9.9937})
}

func TestReadCentroidsCSV(t *testing.T) {
	is := is.New(t)
	list := "country,postal,latitude,longitude\nde,10115,52.5323,13.3846\nDEU, 80331 ,48.1374,11.5755,München\n"

	var got []Centroid
	skipped, err := ReadCentroids(strings.NewReader(list), func(c Centroid) error {
		got = append(got, c)
		return nil
	})
	is.NoErr(err)
	is.Equal(skipped, 1) // header
	is.Equal(len(got), 2)
	is.Equal(got[1].CountryCode, "DE")
	is.Equal(got[1].PostalCode, "80331")
	is.Equal(got[1].PlaceName, "München")
}

func TestReadCentroidsCallbackError(t *testing.T) {
	is := is.New(t)
	boom := errors.New("boom")
	_, err := ReadCentroids(strings.NewReader("DE,10115,52.5,13.4\n"), func(Centroid) error { return boom })
	is.Equal(err, boom)
}
