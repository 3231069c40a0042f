package deconz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjos/lighter/internal/model"
	"github.com/anjos/lighter/internal/scene"
)

// mustEntries decodes a scene document for tests.
func mustEntries(t *testing.T, doc string) []scene.Entry {
	t.Helper()
	entries, err := scene.Decode([]byte(doc))
	require.NoError(t, err)
	return entries
}

// recordedRequest captures one request the fake gateway received, for
// asserting on paths, methods and bodies.
type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeGateway is a minimal in-memory deCONZ server. Handlers are keyed
// by "METHOD path"; unmatched requests answer 404 so tests fail loudly
// when the client hits an unexpected endpoint.
type fakeGateway struct {
	mu       sync.Mutex
	requests []recordedRequest
	handlers map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{handlers: make(map[string]func(http.ResponseWriter, *http.Request))}
}

// handle registers a canned JSON response for a method and path.
func (g *fakeGateway) handle(method, path string, status int, payload any) {
	g.handlers[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// okWrite registers a write endpoint answering with a single success
// entry, the way the gateway confirms attribute writes.
func (g *fakeGateway) okWrite(method, path string) {
	g.handle(method, path, http.StatusOK, []map[string]any{
		{"success": map[string]any{path: true}},
	})
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}

	g.mu.Lock()
	g.requests = append(g.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: body})
	handler, ok := g.handlers[r.Method+" "+r.URL.Path]
	g.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	handler(w, r)
}

// recorded returns the requests seen so far, filtered by method when
// method is non-empty.
func (g *fakeGateway) recorded(method string) []recordedRequest {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []recordedRequest
	for _, r := range g.requests {
		if method == "" || r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

// newTestClient starts the fake gateway and returns a client pointed at
// it, authenticated with the key "KEY".
func newTestClient(t *testing.T, gw *fakeGateway) *Client {
	t.Helper()

	srv := httptest.NewServer(gw)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	return New(Options{
		Host:           u.Hostname(),
		Port:           port,
		APIKey:         "KEY",
		TransitionTime: 10,
	})
}

// testLights is the light catalog most tests serve: a couple of
// temperature bulbs and an on/off plug.
func testLights() map[string]model.Light {
	return map[string]model.Light{
		"1": {Name: "Office Window", Type: "Color temperature light", CtMin: 250, CtMax: 454,
			State: model.LightState{On: true, Bri: 128, Ct: 370, Reachable: true}},
		"2": {Name: "Office Ceiling", Type: "Color temperature light", CtMin: 250, CtMax: 454,
			State: model.LightState{On: false, Reachable: true}},
		"10": {Name: "Entrance Plug", Type: "On/Off plug-in unit",
			State: model.LightState{On: true, Reachable: true}},
	}
}

// TestLights_FilteringAndCaching verifies selector filtering and that
// the catalog is fetched from the gateway only once per client.
func TestLights_FilteringAndCaching(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, testLights())
	c := newTestClient(t, gw)
	ctx := context.Background()

	all, err := c.Lights(ctx, model.All)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := c.Lights(ctx, model.MustSelector("office window"))
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Office Window", byName["1"].Name)

	byRegexp, err := c.Lights(ctx, model.MustSelector("/^Office/"))
	require.NoError(t, err)
	assert.Len(t, byRegexp, 2)

	byID, err := c.Lights(ctx, model.MustSelector("10"))
	require.NoError(t, err)
	require.Len(t, byID, 1)
	light10 := byID["10"]
	assert.True(t, light10.IsSwitch())

	// Four queries, one catalog fetch.
	assert.Len(t, gw.recorded(http.MethodGet), 1)

	// RefreshCache forces a refetch on next access.
	c.RefreshCache()
	_, err = c.Lights(ctx, model.All)
	require.NoError(t, err)
	assert.Len(t, gw.recorded(http.MethodGet), 2)
}

// TestSetLightState verifies per-light translation: the bulb receives
// brightness, color temperature and transition time, while the plug on
// the same selector receives only the power flag.
func TestSetLightState(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, testLights())
	gw.okWrite(http.MethodPut, "/api/KEY/lights/1/state")
	gw.okWrite(http.MethodPut, "/api/KEY/lights/10/state")
	c := newTestClient(t, gw)

	affected, err := c.SetLightState(context.Background(),
		model.MustSelector("/Window|Plug/"), []string{"on", "90%", "cool"})
	require.NoError(t, err)
	assert.Equal(t, 2, affected)

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 2)

	// Identifier order is ascending numeric, so the bulb goes first.
	assert.Equal(t, "/api/KEY/lights/1/state", puts[0].Path)
	assert.Equal(t, map[string]any{
		"on": true, "bri": float64(230), "ct": float64(346),
		"alert": "none", "transitiontime": float64(10),
	}, puts[0].Body)

	assert.Equal(t, "/api/KEY/lights/10/state", puts[1].Path)
	assert.Equal(t, map[string]any{"on": true}, puts[1].Body)
}

// TestSetLightState_NoMatch verifies an empty match is reported as zero
// affected lights, not as an error.
func TestSetLightState_NoMatch(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, testLights())
	c := newTestClient(t, gw)

	affected, err := c.SetLightState(context.Background(),
		model.MustSelector("basement"), []string{"off"})
	require.NoError(t, err)
	assert.Zero(t, affected)
	assert.Empty(t, gw.recorded(http.MethodPut))
}

// TestSetLightName verifies the rename endpoint and that the cached
// catalog is invalidated (selectors match on the new names afterwards).
func TestSetLightName(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, testLights())
	gw.okWrite(http.MethodPut, "/api/KEY/lights/1")
	c := newTestClient(t, gw)

	affected, err := c.SetLightName(context.Background(), model.MustSelector("1"), "Desk Lamp")
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, map[string]any{"name": "Desk Lamp"}, puts[0].Body)

	// The next catalog access refetches.
	_, err = c.Lights(context.Background(), model.All)
	require.NoError(t, err)
	assert.Len(t, gw.recorded(http.MethodGet), 2)
}

// TestResolveLightIDs verifies additive, order-preserving resolution
// with de-duplication across overlapping selectors.
func TestResolveLightIDs(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, testLights())
	c := newTestClient(t, gw)

	ids, err := c.ResolveLightIDs(context.Background(),
		[]string{"10", "/Office.*/", "office window"})
	require.NoError(t, err)

	// The plug first (listed first), then the Office lights in id
	// order; the final token duplicates light 1 and is dropped.
	assert.Equal(t, []string{"10", "1", "2"}, ids)
}

// TestResolveLightIDs_BadToken verifies invalid selector tokens fail
// the whole resolution.
func TestResolveLightIDs_BadToken(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, testLights())
	c := newTestClient(t, gw)

	_, err := c.ResolveLightIDs(context.Background(), []string{"/[bad/"})
	assert.Error(t, err)
}

// TestGet_ErrorMapping verifies the exit codes for rejected keys and
// unreachable gateways.
func TestGet_ErrorMapping(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/BAD/lights", http.StatusForbidden,
		[]map[string]any{{"error": map[string]any{"type": 1, "address": "/", "description": "unauthorized user"}}})
	srvClient := newTestClient(t, gw)
	srvClient.apiKey = "BAD"

	_, err := srvClient.Lights(context.Background(), model.All)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitNotAuthorized, cliErr.Code)

	// A client pointed at a dead port reports the gateway as
	// unreachable.
	dead := New(Options{Host: "127.0.0.1", Port: 1, APIKey: "KEY"})
	_, err = dead.Lights(context.Background(), model.All)
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGatewayUnreachable, cliErr.Code)
}

// TestAcquireAPIKey verifies the link-button retry loop: a 403 answer
// triggers a retry, and the following success adopts the key.
func TestAcquireAPIKey(t *testing.T) {
	var calls int
	var mu sync.Mutex

	gw := newFakeGateway()
	gw.handlers["POST /api"] = func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"error": map[string]any{"type": 101, "address": "/", "description": "link button not pressed"}}})
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"success": map[string]any{"username": "NEWKEY"}}})
	}
	c := newTestClient(t, gw)
	c.apiKey = ""

	key, err := c.AcquireAPIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NEWKEY", key)
	assert.Equal(t, "NEWKEY", c.APIKey())

	posts := gw.recorded(http.MethodPost)
	require.Len(t, posts, 2)
	assert.Equal(t, map[string]any{"devicetype": "lighter"}, posts[0].Body)
}

// TestAcquireAPIKey_Cancelled verifies the loop gives up when the
// context ends while the link button stays unpressed.
func TestAcquireAPIKey_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := newFakeGateway()
	gw.handlers["POST /api"] = func(w http.ResponseWriter, r *http.Request) {
		// Give up after the first refusal.
		cancel()
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"error": map[string]any{"type": 101, "address": "/", "description": "link button not pressed"}}})
	}
	c := newTestClient(t, gw)

	_, err := c.AcquireAPIKey(ctx)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitNotAuthorized, cliErr.Code)
}

// TestFullStateAndPushConfig verifies configuration pull and push paths.
func TestFullStateAndPushConfig(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY", http.StatusOK, map[string]any{
		"config": map[string]any{"name": "Phoscon-GW"},
		"lights": map[string]any{},
	})
	gw.okWrite(http.MethodPut, "/api/KEY/config")
	c := newTestClient(t, gw)

	state, err := c.FullState(context.Background())
	require.NoError(t, err)
	assert.Contains(t, state, "config")

	err = c.PushConfig(context.Background(), map[string]any{"name": "Home"})
	require.NoError(t, err)

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, "/api/KEY/config", puts[0].Path)
	assert.Equal(t, map[string]any{"name": "Home"}, puts[0].Body)
}

// gwWithGroups builds a fake gateway carrying the test lights and two
// groups: Office (lights 1 and 2, two scenes) and Everything.
func gwWithGroups() *fakeGateway {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, testLights())
	gw.handle(http.MethodGet, "/api/KEY/groups", http.StatusOK, map[string]model.Group{
		"1": {Name: "Office", Lights: []string{"1", "2"},
			Scenes: []model.SceneRef{{ID: "1", Name: "Work"}, {ID: "2", Name: "Relax"}},
			State:  model.GroupState{AnyOn: true}},
		"2": {Name: "Everything", Lights: []string{"1", "2", "10"},
			State: model.GroupState{AllOn: false}},
	})
	return gw
}

// TestGroups_Filtering verifies selector matching for groups.
func TestGroups_Filtering(t *testing.T) {
	gw := gwWithGroups()
	c := newTestClient(t, gw)

	all, err := c.Groups(context.Background(), model.All)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	office, err := c.Groups(context.Background(), model.MustSelector("Office"))
	require.NoError(t, err)
	require.Len(t, office, 1)
	assert.Equal(t, []string{"1", "2"}, office["1"].Lights)
}

// TestSetGroupAttrs verifies rename, membership resolution and the
// clear-membership case.
func TestSetGroupAttrs(t *testing.T) {
	gw := gwWithGroups()
	gw.okWrite(http.MethodPut, "/api/KEY/groups/1")
	c := newTestClient(t, gw)
	ctx := context.Background()

	name := "Workspace"
	affected, err := c.SetGroupAttrs(ctx, model.MustSelector("Office"), GroupAttrs{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, map[string]any{"name": "Workspace"}, puts[0].Body)

	// Membership: selectors resolve additively against the light
	// catalog.
	affected, err = c.SetGroupAttrs(ctx, model.MustSelector("1"),
		GroupAttrs{LightTokens: []string{"/Office.*/", "10"}})
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	puts = gw.recorded(http.MethodPut)
	require.Len(t, puts, 2)
	assert.Equal(t, map[string]any{"lights": []any{"1", "2", "10"}}, puts[1].Body)

	// An empty (non-nil) token list clears the group.
	_, err = c.SetGroupAttrs(ctx, model.MustSelector("1"), GroupAttrs{LightTokens: []string{}})
	require.NoError(t, err)
	puts = gw.recorded(http.MethodPut)
	require.Len(t, puts, 3)
	assert.Equal(t, map[string]any{"lights": []any{}}, puts[2].Body)
}

// TestSetGroupState verifies the group action endpoint receives one
// translation computed against the conservative group bounds.
func TestSetGroupState(t *testing.T) {
	gw := gwWithGroups()
	gw.okWrite(http.MethodPut, "/api/KEY/groups/1/action")
	c := newTestClient(t, gw)

	affected, err := c.SetGroupState(context.Background(),
		model.MustSelector("Office"), []string{"on", "day"})
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, "/api/KEY/groups/1/action", puts[0].Path)
	// "day" is 6500K = ct 153, clamped to the group minimum of 250.
	assert.Equal(t, float64(250), puts[0].Body["ct"])
	assert.Equal(t, true, puts[0].Body["on"])
}

// TestGroupLights verifies member lights are selected from the catalog.
func TestGroupLights(t *testing.T) {
	gw := gwWithGroups()
	c := newTestClient(t, gw)

	lights, err := c.GroupLights(context.Background(), model.MustSelector("Office"))
	require.NoError(t, err)
	assert.Len(t, lights, 2)
	assert.Contains(t, lights, "1")
	assert.Contains(t, lights, "2")

	none, err := c.GroupLights(context.Background(), model.MustSelector("attic"))
	require.NoError(t, err)
	assert.Empty(t, none)
}

// TestScenes verifies per-group scene listing and filtering.
func TestScenes(t *testing.T) {
	gw := gwWithGroups()
	c := newTestClient(t, gw)

	scenes, err := c.Scenes(context.Background(), model.MustSelector("Office"), model.All)
	require.NoError(t, err)
	require.Contains(t, scenes, "1")
	assert.Len(t, scenes["1"], 2)

	relax, err := c.Scenes(context.Background(), model.MustSelector("Office"), model.MustSelector("Relax"))
	require.NoError(t, err)
	require.Len(t, relax["1"], 1)
	assert.Equal(t, "2", relax["1"][0].ID)
}

// TestStoreScene verifies the store endpoint and the exactly-one
// resolution rules.
func TestStoreScene(t *testing.T) {
	gw := gwWithGroups()
	gw.okWrite(http.MethodPut, "/api/KEY/groups/1/scenes/2/store")
	c := newTestClient(t, gw)
	ctx := context.Background()

	require.NoError(t, c.StoreScene(ctx, model.MustSelector("Office"), model.MustSelector("Relax")))

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, "/api/KEY/groups/1/scenes/2/store", puts[0].Path)

	var cliErr *model.CLIError

	// No matching group.
	err := c.StoreScene(ctx, model.MustSelector("attic"), model.MustSelector("Relax"))
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitNoMatch, cliErr.Code)

	// More than one group.
	err = c.StoreScene(ctx, model.All, model.MustSelector("Relax"))
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitNoMatch, cliErr.Code)

	// No matching scene.
	err = c.StoreScene(ctx, model.MustSelector("Office"), model.MustSelector("Cinema"))
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitNoMatch, cliErr.Code)

	// More than one scene.
	err = c.StoreScene(ctx, model.MustSelector("Office"), model.MustSelector("/.*/"))
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitNoMatch, cliErr.Code)
}

// TestRecallScene verifies the recall endpoint path.
func TestRecallScene(t *testing.T) {
	gw := gwWithGroups()
	gw.okWrite(http.MethodPut, "/api/KEY/groups/1/scenes/1/recall")
	c := newTestClient(t, gw)

	require.NoError(t, c.RecallScene(context.Background(),
		model.MustSelector("Office"), model.MustSelector("Work")))

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 1)
	assert.Equal(t, "/api/KEY/groups/1/scenes/1/recall", puts[0].Path)
}

// TestApplyGroupScene verifies ordered application with sub-selection
// against the group's member lights only: "/.*/" hits the two Office
// lights but never the plug outside the group.
func TestApplyGroupScene(t *testing.T) {
	gw := gwWithGroups()
	for _, id := range []string{"1", "2"} {
		gw.okWrite(http.MethodPut, fmt.Sprintf("/api/KEY/lights/%s/state", id))
	}
	c := newTestClient(t, gw)

	entries := mustEntries(t, "/.*/: off\nOffice Window: on 60% natural\n")
	affected, err := c.ApplyGroupScene(context.Background(), model.MustSelector("Office"), entries)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	puts := gw.recorded(http.MethodPut)
	// First entry turns both members off, second turns the window
	// light back on.
	require.Len(t, puts, 3)
	assert.Equal(t, "/api/KEY/lights/1/state", puts[0].Path)
	assert.Equal(t, false, puts[0].Body["on"])
	assert.Equal(t, "/api/KEY/lights/2/state", puts[1].Path)
	assert.Equal(t, false, puts[1].Body["on"])

	assert.Equal(t, "/api/KEY/lights/1/state", puts[2].Path)
	assert.Equal(t, true, puts[2].Body["on"])
	assert.Equal(t, float64(153), puts[2].Body["bri"]) // 60%
	assert.Equal(t, float64(369), puts[2].Body["ct"])  // natural
}

// TestSetScene verifies the snapshot / apply / store / restore cycle.
func TestSetScene(t *testing.T) {
	gw := gwWithGroups()
	gw.okWrite(http.MethodPut, "/api/KEY/lights/1/state")
	gw.okWrite(http.MethodPut, "/api/KEY/lights/2/state")
	gw.okWrite(http.MethodPut, "/api/KEY/groups/1/scenes/2/store")
	c := newTestClient(t, gw)

	entries := mustEntries(t, "/.*/: on 50% warm\n")
	err := c.SetScene(context.Background(),
		model.MustSelector("Office"), model.MustSelector("Relax"), entries)
	require.NoError(t, err)

	puts := gw.recorded(http.MethodPut)
	// Two state writes for the scene, the store call, then two state
	// writes restoring the snapshot.
	require.Len(t, puts, 5)
	assert.Equal(t, "/api/KEY/groups/1/scenes/2/store", puts[2].Path)

	// The restore write for light 1 reinstates its snapshot state
	// (on, bri 128, ct 370) with the client's transition time.
	restore := puts[3]
	assert.Equal(t, "/api/KEY/lights/1/state", restore.Path)
	assert.Equal(t, true, restore.Body["on"])
	assert.Equal(t, float64(128), restore.Body["bri"])
	assert.Equal(t, float64(370), restore.Body["ct"])
	assert.Equal(t, float64(10), restore.Body["transitiontime"])
	assert.NotContains(t, restore.Body, "alert")
	assert.NotContains(t, restore.Body, "reachable")
	assert.NotContains(t, restore.Body, "colormode")
}

// TestSetScene_RestoresColorAttributes verifies the snapshot carries
// the raw state document, so attributes outside the typed model (hue,
// sat, xy, effect on color lights) survive the restore, while the
// read-only and transient ones are still stripped.
func TestSetScene_RestoresColorAttributes(t *testing.T) {
	gw := newFakeGateway()
	gw.handle(http.MethodGet, "/api/KEY/lights", http.StatusOK, map[string]any{
		"1": map[string]any{
			"name": "Living Bar", "type": "Extended color light",
			"state": map[string]any{
				"on": true, "bri": 200, "hue": 8402, "sat": 140,
				"xy": []float64{0.4573, 0.41}, "effect": "none",
				"colormode": "xy", "alert": "none", "reachable": true,
			},
		},
	})
	gw.handle(http.MethodGet, "/api/KEY/groups", http.StatusOK, map[string]model.Group{
		"1": {Name: "Living", Lights: []string{"1"},
			Scenes: []model.SceneRef{{ID: "1", Name: "Evening"}}},
	})
	gw.okWrite(http.MethodPut, "/api/KEY/lights/1/state")
	gw.okWrite(http.MethodPut, "/api/KEY/groups/1/scenes/1/store")
	c := newTestClient(t, gw)

	entries := mustEntries(t, "/.*/: on 100%\n")
	err := c.SetScene(context.Background(),
		model.MustSelector("Living"), model.MustSelector("Evening"), entries)
	require.NoError(t, err)

	puts := gw.recorded(http.MethodPut)
	require.Len(t, puts, 3)

	restore := puts[2]
	assert.Equal(t, "/api/KEY/lights/1/state", restore.Path)
	assert.Equal(t, float64(8402), restore.Body["hue"])
	assert.Equal(t, float64(140), restore.Body["sat"])
	assert.Equal(t, []any{0.4573, 0.41}, restore.Body["xy"])
	assert.Equal(t, "none", restore.Body["effect"])
	assert.Equal(t, float64(200), restore.Body["bri"])
	assert.Equal(t, float64(10), restore.Body["transitiontime"])
	assert.NotContains(t, restore.Body, "colormode")
	assert.NotContains(t, restore.Body, "alert")
	assert.NotContains(t, restore.Body, "reachable")
}
