package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCities(t *testing.T) {
	r := Default()
	cities := r.ListCities()

	require.Len(t, cities, 6)
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.Name)
		assert.GreaterOrEqual(t, len(c.Universities), 2, c.Name)
		assert.LessOrEqual(t, len(c.Universities), 3, c.Name)
	}
	assert.Equal(t, []string{"Chennai", "Bangalore", "Hyderabad", "Trichy", "Delhi", "Mumbai"}, names)
}

func TestFindCityAndUniversity(t *testing.T) {
	r := Default()

	city := r.FindCity("trichy")
	require.NotNil(t, city)
	assert.Equal(t, "Trichy", city.Name)

	uni := r.FindUniversity(city, "nitt")
	require.NotNil(t, uni)
	assert.Equal(t, "NIT Trichy", uni.Name)

	assert.Nil(t, r.FindUniversity(city, "iitm"), "university of another city must not resolve")
	assert.Nil(t, r.FindUniversity(nil, "nitt"))
	assert.Nil(t, r.FindCity("pune"))
}

func TestListCitiesReturnsCopy(t *testing.T) {
	r := Default()

	cities := r.ListCities()
	cities[0].Name = "Madras"
	cities[0].Universities[0].Name = "changed"

	again := r.FindCity("chennai")
	require.NotNil(t, again)
	assert.Equal(t, "Chennai", again.Name)
	assert.Equal(t, "IIT Madras", again.Universities[0].Name)
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte(`
- id: a
  name: A
- id: a
  name: B
`))
	assert.Error(t, err)

	_, err = Parse([]byte(`
- id: a
  name: A
  universities:
    - {id: u, name: U}
    - {id: u, name: V}
`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not: [valid`))
	assert.Error(t, err)
}
