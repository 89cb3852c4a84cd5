package proto

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestContactUpdatePresence(t *testing.T) {
	is := is.New(t)
	var u ContactUpdate
	is.NoErr(json.Unmarshal([]byte(`{"contactId":"c1","teamId":"t1","city":"","phone":null,"name":"Jane","isBipoc":false}`), &u))

	is.True(!u.Address.IsSet())

	city, ok := u.City.Get()
	is.True(u.City.IsSet())
	is.True(ok)
	is.Equal(city, "")

	is.True(u.Phone.IsSet())
	is.True(u.Phone.IsNull())
	_, ok = u.Phone.Get()
	is.True(!ok)

	name, ok := u.Name.Get()
	is.True(ok)
	is.Equal(name, "Jane")

	bipoc, ok := u.IsBipoc.Get()
	is.True(ok)
	is.Equal(bipoc, false)

	is.True(!u.SocialLinks.IsSet())
	is.True(!u.ProfileAttributes.IsSet())
}

func TestOptionalSideTables(t *testing.T) {
	is := is.New(t)
	var u ContactUpdate
	is.NoErr(json.Unmarshal([]byte(`{"socialLinks":[],"profileAttributes":[{"key":"role","type":"STRING","value":""}]}`), &u))
	links, ok := u.SocialLinks.Get()
	is.True(ok)
	is.Equal(len(links), 0)
	attrs, ok := u.ProfileAttributes.Get()
	is.True(ok)
	is.Equal(attrs[0].Key, "role")
}

func TestOptionalMarshal(t *testing.T) {
	is := is.New(t)
	bts, err := json.Marshal(struct {
		A Optional[string] `json:"a"`
		B Optional[string] `json:"b"`
		C Optional[int]    `json:"c"`
	}{A: Some("x"), B: Null[string]()})
	is.NoErr(err)
	is.Equal(string(bts), `{"a":"x","b":null,"c":null}`)
}

func TestOptionalInvalidValue(t *testing.T) {
	is := is.New(t)
	var u ContactUpdate
	is.True(json.Unmarshal([]byte(`{"isBipoc":"yes"}`), &u) != nil)
}
