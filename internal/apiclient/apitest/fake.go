// Package apitest provides an in-memory stand-in for the remote listing API.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"estateadmin/internal/domain"
)

// Server is a fake remote API. All fields are guarded by mu; use the helper
// methods from tests.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	Properties  []domain.Property
	Categories  []domain.Category
	Districts   []domain.District
	Users       []domain.User
	Commissions []domain.Commission
	Uploaded    []string
	Deleted     []string

	// Token is what a successful login returns.
	Token    string
	Password string

	hits     map[string]int
	failures map[string]failure
	seq      int
}

type failure struct {
	status int
	msg    string
}

// New starts a fake API; its base URL is s.URL + "/api".
func New(t testing.TB) *Server {
	s := &Server{hits: map[string]int{}, failures: map[string]failure{}, Password: "Passw0rd!"}
	mux := http.NewServeMux()
	s.routes(mux)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *Server) BaseURL() string { return s.URL + "/api" }

// Fail makes every request whose route key matches return status with a
// message body. Route keys look like "PUT /post/updatepost/{id}".
func (s *Server) Fail(route string, status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, msg: msg}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Hits counts requests per route key.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

func (s *Server) AddProperty(p domain.Property) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.nextID("p")
	}
	s.Properties = append(s.Properties, p)
}

func (s *Server) AddCommission(c domain.Commission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.nextID("c")
	}
	s.Commissions = append(s.Commissions, c)
}

func (s *Server) CommissionsFor(propertyID string) []domain.Commission {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Commission
	for _, c := range s.Commissions {
		if c.PostID == propertyID {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) Property(id string) (domain.Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Property{}, false
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return prefix + strconv.Itoa(s.seq)
}

func (s *Server) handle(mux *http.ServeMux, route string, h func(w http.ResponseWriter, r *http.Request)) {
	method, path, _ := strings.Cut(route, " ")
	mux.HandleFunc(method+" /api"+path, func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[route]++
		f, failing := s.failures[route]
		s.mu.Unlock()
		if failing {
			writeJSON(w, f.status, map[string]string{"message": f.msg})
			return
		}
		h(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func data(w http.ResponseWriter, v any) { writeJSON(w, http.StatusOK, map[string]any{"data": v}) }

func (s *Server) routes(mux *http.ServeMux) {
	s.handle(mux, "POST /admin/login", func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != s.Password {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": s.Token})
	})

	s.handle(mux, "GET /post/viewallpost", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		data(w, append([]domain.Property{}, s.Properties...))
	})
	s.handle(mux, "GET /post/{id}", func(w http.ResponseWriter, r *http.Request) {
		p, ok := s.Property(r.PathValue("id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
			return
		}
		data(w, p)
	})
	s.handle(mux, "POST /post/create/{adminId}", func(w http.ResponseWriter, r *http.Request) {
		var in domain.PropertyInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		s.mu.Lock()
		p := fromInput(s.nextID("p"), in)
		p.CreatedAt = time.Now().UTC()
		s.Properties = append(s.Properties, p)
		s.mu.Unlock()
		data(w, p)
	})
	s.handle(mux, "PUT /post/updatepost/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in domain.PropertyInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, p := range s.Properties {
			if p.ID == r.PathValue("id") {
				np := fromInput(p.ID, in)
				np.CreatedAt = p.CreatedAt
				s.Properties[i] = np
				data(w, np)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
	})
	s.handle(mux, "DELETE /post/delete/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, p := range s.Properties {
			if p.ID == r.PathValue("id") {
				s.Properties = append(s.Properties[:i], s.Properties[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
	})

	s.handle(mux, "POST /file/uploads", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		var paths []string
		s.mu.Lock()
		for _, fh := range r.MultipartForm.File["images"] {
			f, err := fh.Open()
			if err == nil {
				_, _ = io.Copy(io.Discard, f)
				_ = f.Close()
			}
			p := fmt.Sprintf("https://cdn.example.test/%s/%s", s.nextID("img"), fh.Filename)
			s.Uploaded = append(s.Uploaded, p)
			paths = append(paths, p)
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"imagePaths": paths})
	})
	s.handle(mux, "POST /post/delete-images", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Images []string `json:"images"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.mu.Lock()
		s.Deleted = append(s.Deleted, in.Images...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	})

	s.handle(mux, "GET /admin/getcategory", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		data(w, append([]domain.Category{}, s.Categories...))
	})
	s.handle(mux, "POST /admin/addcategory/{adminId}", func(w http.ResponseWriter, r *http.Request) {
		var in domain.Category
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, c := range s.Categories {
			if c.Name == in.Name {
				writeJSON(w, http.StatusConflict, map[string]string{"message": "Category already exists"})
				return
			}
		}
		in.ID = s.nextID("cat")
		s.Categories = append(s.Categories, in)
		data(w, in)
	})
	s.handle(mux, "GET /admin/getdistrict", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		data(w, append([]domain.District{}, s.Districts...))
	})
	s.handle(mux, "POST /admin/addistrict/{adminId}", func(w http.ResponseWriter, r *http.Request) {
		var in domain.District
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.mu.Lock()
		defer s.mu.Unlock()
		in.ID = s.nextID("d")
		s.Districts = append(s.Districts, in)
		data(w, in)
	})

	s.handle(mux, "GET /user/get_all_users", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		data(w, append([]domain.User{}, s.Users...))
	})
	s.handle(mux, "GET /admin/propety_in_category", func(w http.ResponseWriter, r *http.Request) {
		data(w, s.countBy(func(p domain.Property) string { return p.Category }))
	})
	s.handle(mux, "GET /admin/propety_in_district", func(w http.ResponseWriter, r *http.Request) {
		data(w, s.countBy(func(p domain.Property) string { return p.District }))
	})
	s.handle(mux, "GET /admin/propety_count", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]domain.PropertyStat, 0, len(s.Properties))
		for _, p := range s.Properties {
			out = append(out, domain.PropertyStat{ID: p.ID, IsSold: p.IsSold, CreatedAt: p.CreatedAt})
		}
		data(w, out)
	})

	s.handle(mux, "GET /commission/post/{id}", func(w http.ResponseWriter, r *http.Request) {
		cs := s.CommissionsFor(r.PathValue("id"))
		if len(cs) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Commission not found"})
			return
		}
		data(w, cs[0])
	})
	s.handle(mux, "POST /commission/", func(w http.ResponseWriter, r *http.Request) {
		var in domain.CommissionInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.mu.Lock()
		defer s.mu.Unlock()
		c := domain.Commission{ID: s.nextID("c"), PostID: in.PostID, Amount: in.Amount, Notes: in.Notes, CreatedAt: time.Now().UTC()}
		s.Commissions = append(s.Commissions, c)
		data(w, c)
	})
	s.handle(mux, "PUT /commission/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in domain.CommissionInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, c := range s.Commissions {
			if c.ID == r.PathValue("id") {
				c.Amount, c.Notes = in.Amount, in.Notes
				s.Commissions[i] = c
				data(w, c)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Commission not found"})
	})
	s.handle(mux, "DELETE /commission/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, c := range s.Commissions {
			if c.ID == r.PathValue("id") {
				s.Commissions = append(s.Commissions[:i], s.Commissions[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Commission not found"})
	})
}

func (s *Server) countBy(key func(domain.Property) string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := []string{}
	counts := map[string]int{}
	for _, p := range s.Properties {
		k := key(p)
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]map[string]any, 0, len(order))
	for _, k := range order {
		out = append(out, map[string]any{"name": k, "_count": map[string]int{"posts": counts[k]}})
	}
	return out
}

func fromInput(id string, in domain.PropertyInput) domain.Property {
	return domain.Property{
		ID:          id,
		Title:       in.Title,
		Price:       in.Price,
		Location:    in.Location,
		District:    in.District,
		Category:    in.Category,
		Type:        in.Type,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Area:        domain.Area(in.Area),
		Description: in.Description,
		Images:      in.Images,
		IsSold:      in.IsSold,
	}
}
