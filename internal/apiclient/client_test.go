package apiclient_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"estateadmin/internal/apiclient"
	"estateadmin/internal/apiclient/apitest"
	"estateadmin/internal/domain"
)

func newClient(t *testing.T) (*apiclient.Client, *apitest.Server) {
	t.Helper()
	srv := apitest.New(t)
	return apiclient.New(srv.BaseURL(), 2*time.Second).WithToken("tok"), srv
}

func TestLogin(t *testing.T) {
	c, srv := newClient(t)
	srv.Token = "signed.jwt.token"

	tok, err := c.Login("admin@example.test", "Passw0rd!")
	require.NoError(t, err)
	require.Equal(t, "signed.jwt.token", tok)

	_, err = c.Login("admin@example.test", "nope")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)
	require.Equal(t, "Invalid credentials", apiErr.Message)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestListPropertiesEmpty(t *testing.T) {
	c, _ := newClient(t)
	props, err := c.ListProperties()
	require.NoError(t, err)
	require.NotNil(t, props)
	require.Empty(t, props)
}

func TestPropertyCRUD(t *testing.T) {
	c, srv := newClient(t)

	created, err := c.CreateProperty("admin-1", domain.PropertyInput{
		Title: "Seaside Villa", Price: 450000, Location: "Goa", Type: domain.TypeSale,
		Bedrooms: 3, Bathrooms: 2, Area: "1800", Category: "villa", District: "north",
		Images: []string{"https://cdn.example.test/a.jpg"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := c.GetProperty(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Seaside Villa", got.Title)
	require.Equal(t, domain.Area("1800"), got.Area)
	require.Equal(t, "https://cdn.example.test/a.jpg", got.Cover())

	in := domain.InputFrom(got)
	in.IsSold = true
	_, err = c.UpdateProperty(created.ID, in)
	require.NoError(t, err)
	p, _ := srv.Property(created.ID)
	require.True(t, p.IsSold)

	require.NoError(t, c.DeleteProperty(created.ID))
	_, err = c.GetProperty(created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadAndDeleteImages(t *testing.T) {
	c, srv := newClient(t)
	urls, err := c.UploadImages([]apiclient.Upload{
		{Name: "a.png", Content: []byte("a")},
		{Name: "b.png", Content: []byte("b")},
	})
	require.NoError(t, err)
	require.Len(t, urls, 2)
	require.Contains(t, urls[0], "a.png")

	require.NoError(t, c.DeleteImages(urls[:1]))
	require.Equal(t, urls[:1], srv.Deleted)
	require.NoError(t, c.DeleteImages(nil))
	require.Equal(t, 1, srv.Hits("POST /post/delete-images"))
}

func TestTaxonomyAndStats(t *testing.T) {
	c, srv := newClient(t)
	require.NoError(t, c.CreateCategory("admin-1", "Villa", "Large homes"))
	require.NoError(t, c.CreateDistrict("admin-1", "North Goa"))

	cats, err := c.ListCategories()
	require.NoError(t, err)
	require.Equal(t, "villa", cats[0].Name)
	ds, err := c.ListDistricts()
	require.NoError(t, err)
	require.Equal(t, "north goa", ds[0].Name)

	err = c.CreateCategory("admin-1", "villa", "")
	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Category already exists", apiclient.UserMessage(err, "fallback"))

	srv.AddProperty(domain.Property{Title: "A", Category: "villa", District: "north goa", IsSold: true})
	srv.AddProperty(domain.Property{Title: "B", Category: "villa", District: "south goa"})
	perCat, err := c.PropertiesPerCategory()
	require.NoError(t, err)
	require.Len(t, perCat, 1)
	require.Equal(t, 2, perCat[0].Count.Posts)
	perDistrict, err := c.PropertiesPerDistrict()
	require.NoError(t, err)
	require.Len(t, perDistrict, 2)
	stats, err := c.PropertyStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.True(t, stats[0].IsSold)
}

func TestCommissionLifecycle(t *testing.T) {
	c, _ := newClient(t)

	cm, err := c.CommissionByProperty("p1")
	require.NoError(t, err)
	require.Nil(t, cm)

	created, err := c.CreateCommission(domain.CommissionInput{PostID: "p1", Amount: 15000, Notes: "buyer agent"})
	require.NoError(t, err)

	cm, err = c.CommissionByProperty("p1")
	require.NoError(t, err)
	require.Equal(t, int64(15000), cm.Amount)

	_, err = c.UpdateCommission(created.ID, domain.CommissionInput{PostID: "p1", Amount: 20000})
	require.NoError(t, err)
	cm, _ = c.CommissionByProperty("p1")
	require.Equal(t, int64(20000), cm.Amount)

	require.NoError(t, c.DeleteCommission(created.ID))
	cm, err = c.CommissionByProperty("p1")
	require.NoError(t, err)
	require.Nil(t, cm)
}

func TestBearerTokenSent(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := apiclient.New(srv.URL, time.Second).WithToken("abc").ListUsers()
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", auth)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not_json", `<html>oops</html>`},
		{"missing_data", `{"items":[]}`},
		{"wrong_shape", `{"data":{"id":"1"}}`},
		{"missing_required", `{"data":[{"id":"","title":"x","price":1}]}`},
		{"negative_price", `{"data":[{"id":"1","title":"x","price":-5}]}`},
		{"bad_type", `{"data":[{"id":"1","title":"x","price":5,"type":"lease"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := apiclient.New(srv.URL, time.Second).ListProperties()
			var decErr *apiclient.DecodeError
			require.ErrorAs(t, err, &decErr)
			require.Equal(t, "properties.list", decErr.Op)
		})
	}
}

func TestAreaAcceptsNumberOrString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":"1","title":"a","price":1,"area":1200},{"id":"2","title":"b","price":1,"area":"950"}]}`))
	}))
	defer srv.Close()

	props, err := apiclient.New(srv.URL, time.Second).ListProperties()
	require.NoError(t, err)
	require.Equal(t, domain.Area("1200"), props[0].Area)
	require.Equal(t, domain.Area("950"), props[1].Area)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := apiclient.New(url, time.Second).ListUsers()
	var tErr *apiclient.TransportError
	require.ErrorAs(t, err, &tErr)
	require.False(t, errors.Is(err, domain.ErrUnauthorized))
	require.Contains(t, apiclient.UserMessage(err, "fallback"), "Could not reach")
}

func TestUserMessageHidesServerErrors(t *testing.T) {
	c, srv := newClient(t)
	srv.Fail("GET /post/viewallpost", http.StatusInternalServerError, "pq: relation posts does not exist")

	_, err := c.ListProperties()
	require.Error(t, err)
	require.Equal(t, "fallback", apiclient.UserMessage(err, "fallback"))
}
