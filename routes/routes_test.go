package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tripflow/cache"
	sessionRepo "tripflow/database/repository/session"
	"tripflow/handlers"
	"tripflow/models"
	"tripflow/services/capability/providers"
	"tripflow/services/planner"
)

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func (r *memSessionRepo) CreateOrUpdate(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.SessionID] = &copied
	return nil
}

func (r *memSessionRepo) Load(sessionID string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, sessionRepo.ErrSessionNotFound
}

func newTestRouter(t *testing.T) (*gin.Engine, *memSessionRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := cache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	responseCache := cache.New(store, time.Hour, nil)
	repo := &memSessionRepo{sessions: map[string]*models.Session{}}

	engine := planner.NewEngine(planner.ProviderSet{
		Extractor:    providers.NewExtractor(nil, responseCache, nil),
		Profile:      providers.NewProfileLookup(nil),
		Destinations: providers.NewDestinationDiscovery(nil),
		Events:       providers.NewEventSearch(nil),
		Flights:      providers.NewFlightSearch(nil),
		Hotels:       providers.NewHotelSearch(nil),
		Offers:       providers.NewOfferEnhancement(nil),
		Curator:      providers.NewFlightCurator(nil),
		Itinerary:    providers.NewItineraryAssembly(nil),
		Visa:         providers.NewVisaCheck(nil),
		Health:       providers.NewHealthAdvisory(nil),
		Insurance:    providers.NewInsuranceQuote(nil),
		Seatmap:      providers.NewSeatmapLookup(nil),
	}, repo, nil)

	router := gin.New()
	hb := &handlers.HandlerBundle{Engine: engine, SessionRepo: repo, Cache: responseCache}
	RegisterHealthRoute(router)
	RegisterTravelRoutes(router, hb)
	RegisterCacheRoutes(router, hb)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var decoded map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	w, body := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("health body = %v", body)
	}
}

func TestSearchConfirmFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodPost, "/api/travel/search", map[string]any{
		"userRequest": "Plan a 5 day trip to Paris for 2 people",
		"customerId":  "1001",
		"nationality": "US",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d body = %v", w.Code, body)
	}
	if body["status"] != string(models.StatusDraftReady) {
		t.Fatalf("planning status = %v, want %s", body["status"], models.StatusDraftReady)
	}
	sessionID, _ := body["sessionId"].(string)
	if sessionID == "" {
		t.Fatal("response must carry a session id")
	}

	w, body = doJSON(t, router, http.MethodGet, "/api/travel/session/"+sessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session status = %d body = %v", w.Code, body)
	}
	if body["status"] != string(models.StatusDraftReady) {
		t.Errorf("persisted status = %v", body["status"])
	}

	w, body = doJSON(t, router, http.MethodPost, "/api/travel/confirm/"+sessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d body = %v", w.Code, body)
	}
	if body["status"] != string(models.StatusTravelReady) {
		t.Errorf("compliance status = %v, want %s", body["status"], models.StatusTravelReady)
	}
	if body["visaRequirements"] == nil {
		t.Error("confirm response should carry visa requirements")
	}
}

func TestSearchRejectsEmptyRequest(t *testing.T) {
	router, _ := newTestRouter(t)
	w, _ := doJSON(t, router, http.MethodPost, "/api/travel/search", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing userRequest", w.Code)
	}
}

func TestSessionNotFound(t *testing.T) {
	router, _ := newTestRouter(t)
	w, _ := doJSON(t, router, http.MethodGet, "/api/travel/session/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestConfirmRejectsUnreadySession(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.sessions["sess-unready"] = &models.Session{
		SessionID: "sess-unready",
		Status:    models.StatusRequirementsMissing,
	}

	w, _ := doJSON(t, router, http.MethodPost, "/api/travel/confirm/sess-unready", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for an unconfirmable session", w.Code)
	}
}

func TestCacheEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w, body := doJSON(t, router, http.MethodGet, "/api/cache/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	if body["enabled"] != true {
		t.Errorf("cache should be enabled: %v", body)
	}

	w, body = doJSON(t, router, http.MethodPost, "/api/cache/cleanup", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cleanup status = %d", w.Code)
	}
	if _, ok := body["entries_removed"]; !ok {
		t.Errorf("cleanup body = %v", body)
	}

	w, body = doJSON(t, router, http.MethodDelete, "/api/cache/clear", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status = %d", w.Code)
	}
	if _, ok := body["entries_removed"]; !ok {
		t.Errorf("clear body = %v", body)
	}
}
