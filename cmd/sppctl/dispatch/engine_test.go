package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/concave-dev/spp/cmd/sppctl/client"
	"github.com/concave-dev/spp/internal/cmderr"
)

// call is one request seen by fakeAPI
type call struct {
	Method string
	Path   string
	Body   any
}

// fakeAPI answers every request with the same canned response
type fakeAPI struct {
	calls []call
	code  int
	body  string
	fail  bool // return no response at all
}

func (f *fakeAPI) do(method, path string, body any) (*client.Response, error) {
	f.calls = append(f.calls, call{Method: method, Path: path, Body: body})
	if f.fail {
		return nil, errors.New("connection refused")
	}
	return &client.Response{StatusCode: f.code, Body: []byte(f.body)}, nil
}

func (f *fakeAPI) Get(_ context.Context, path string) (*client.Response, error) {
	return f.do("GET", path, nil)
}

func (f *fakeAPI) Put(_ context.Context, path string, body any) (*client.Response, error) {
	return f.do("PUT", path, body)
}

func (f *fakeAPI) Delete(_ context.Context, path string) (*client.Response, error) {
	return f.do("DELETE", path, nil)
}

// bodyJSON encodes a request body the way the HTTP client would
func bodyJSON(t *testing.T, body any) string {
	t.Helper()
	if body == nil {
		return ""
	}
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	return string(data)
}

// TestSecondaryRequests tests the request table of the secondary commands
func TestSecondaryRequests(t *testing.T) {
	tests := []struct {
		cmd        string
		method     string
		path       string
		body       string
		confirm    string
		successful int
	}{
		{"add ring:0", "PUT", "nfvs/1/ports", `{"action":"add","port":"ring:0"}`, "Add ring:0.\n", 204},
		{"del vhost:2", "PUT", "nfvs/1/ports", `{"action":"del","port":"vhost:2"}`, "Delete vhost:2.\n", 204},
		{"forward", "PUT", "nfvs/1/forward", `{"action":"start"}`, "Start forwarding.\n", 204},
		{"stop", "PUT", "nfvs/1/forward", `{"action":"stop"}`, "Stop forwarding.\n", 204},
		{"patch reset", "DELETE", "nfvs/1/patches", "", "Clear all of patches.\n", 204},
		{"patch phy:0 ring:0", "PUT", "nfvs/1/patches", `{"src":"phy:0","dst":"ring:0"}`, "Patch ports (phy:0 -> ring:0).\n", 204},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			api := &fakeAPI{code: tt.successful}
			var out bytes.Buffer
			engine := NewEngine(api, &out)

			if err := engine.Secondary(context.Background(), 1, tt.cmd); err != nil {
				t.Fatalf("Secondary(%q) unexpected error: %v", tt.cmd, err)
			}
			if len(api.calls) != 1 {
				t.Fatalf("expected 1 request, got %d", len(api.calls))
			}

			c := api.calls[0]
			if c.Method != tt.method || c.Path != tt.path {
				t.Errorf("request = %s %s, want %s %s", c.Method, c.Path, tt.method, tt.path)
			}
			if got := bodyJSON(t, c.Body); got != tt.body {
				t.Errorf("body = %s, want %s", got, tt.body)
			}
			if out.String() != tt.confirm {
				t.Errorf("output = %q, want %q", out.String(), tt.confirm)
			}
		})
	}
}

// TestSecondaryResponsePolicy tests absorbed, unknown and missing responses
func TestSecondaryResponsePolicy(t *testing.T) {
	tests := []struct {
		name     string
		api      *fakeAPI
		wantKind cmderr.Kind
		wantErr  bool
	}{
		{"not found absorbed", &fakeAPI{code: 404}, 0, false},
		{"bad request absorbed", &fakeAPI{code: 400}, 0, false},
		{"server error absorbed", &fakeAPI{code: 500}, 0, false},
		{"teapot unknown", &fakeAPI{code: 418}, cmderr.KindProtocol, true},
		{"ok is not no content", &fakeAPI{code: 200}, cmderr.KindProtocol, true},
		{"no response", &fakeAPI{fail: true}, cmderr.KindTransport, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := NewEngine(tt.api, &out).Secondary(context.Background(), 2, "forward")

			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else if !cmderr.Is(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %s", err, tt.wantKind)
			}
			if out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.String())
			}
		})
	}
}

// TestSecondaryUnknownResponseMessage tests the operator message for unknown codes
func TestSecondaryUnknownResponseMessage(t *testing.T) {
	err := NewEngine(&fakeAPI{code: 418}, &bytes.Buffer{}).Secondary(context.Background(), 1, "stop")
	if got := cmderr.Message(err); got != "Error: unknown response." {
		t.Errorf("Message() = %q", got)
	}
}

// TestSecondaryInvalidCommand tests that malformed commands send nothing
func TestSecondaryInvalidCommand(t *testing.T) {
	for _, cmd := range []string{"", "add", "add phy:0", "patch phy:0", "patch phy:0 1", "forward now", "launch"} {
		api := &fakeAPI{code: 204}
		err := NewEngine(api, &bytes.Buffer{}).Secondary(context.Background(), 1, cmd)
		if !cmderr.Is(err, cmderr.KindValidation) {
			t.Errorf("Secondary(%q) error = %v, want validation", cmd, err)
		}
		if len(api.calls) != 0 {
			t.Errorf("Secondary(%q) sent %d requests", cmd, len(api.calls))
		}
	}
}

// TestSecondaryExit tests that exit sends no request
func TestSecondaryExit(t *testing.T) {
	api := &fakeAPI{code: 204}
	var out bytes.Buffer
	if err := NewEngine(api, &out).Secondary(context.Background(), 1, "exit"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.calls) != 0 {
		t.Errorf("exit sent %d requests", len(api.calls))
	}
	if out.String() != "do nothing.\n" {
		t.Errorf("output = %q", out.String())
	}
}

// TestSecondaryStatus tests status rendering from the response body
func TestSecondaryStatus(t *testing.T) {
	api := &fakeAPI{
		code: 200,
		body: `{"status":"running","ports":["phy:0","ring:0"],"patches":[{"src":"phy:0","dst":"ring:0"}]}`,
	}
	var out bytes.Buffer
	if err := NewEngine(api, &out).Secondary(context.Background(), 3, "status"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.calls[0].Method != "GET" || api.calls[0].Path != "nfvs/3" {
		t.Errorf("request = %+v", api.calls[0])
	}
	want := "- status: running\n- ports:\n  - phy:0 -> ring:0\n  - ring:0\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

// TestPrimary tests the primary commands
func TestPrimary(t *testing.T) {
	tests := []struct {
		cmd      string
		api      *fakeAPI
		requests int
		contains string
		wantKind cmderr.Kind
		wantErr  bool
	}{
		{"status", &fakeAPI{code: 200, body: `{"ring_ports":[{"id":0,"rx":1,"tx":2,"rx_drop":3,"tx_drop":4}]}`}, 1, "Ring Ports:", 0, false},
		{"clear", &fakeAPI{code: 204}, 1, "Clear port statistics.", 0, false},
		{"clear", &fakeAPI{code: 404}, 1, "", 0, false},
		{"clear", &fakeAPI{code: 202}, 1, "", cmderr.KindProtocol, true},
		{"exit", &fakeAPI{code: 204}, 0, `"pri; exit" is deprecated.`, 0, false},
		{"restart", &fakeAPI{code: 204}, 0, "", cmderr.KindValidation, true},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			var out bytes.Buffer
			err := NewEngine(tt.api, &out).Primary(context.Background(), tt.cmd)

			if tt.wantErr && !cmderr.Is(err, tt.wantKind) {
				t.Errorf("error = %v, want kind %s", err, tt.wantKind)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(tt.api.calls) != tt.requests {
				t.Errorf("requests = %d, want %d", len(tt.api.calls), tt.requests)
			}
			if !strings.Contains(out.String(), tt.contains) {
				t.Errorf("output %q missing %q", out.String(), tt.contains)
			}
		})
	}
}

// TestPrimaryStatusPaths tests the paths used by the primary commands
func TestPrimaryStatusPaths(t *testing.T) {
	api := &fakeAPI{code: 200, body: `{}`}
	engine := NewEngine(api, &bytes.Buffer{})
	engine.Primary(context.Background(), "status")
	engine.Primary(context.Background(), "clear")

	if api.calls[0].Method != "GET" || api.calls[0].Path != "primary/status" {
		t.Errorf("status request = %+v", api.calls[0])
	}
	if api.calls[1].Method != "DELETE" || api.calls[1].Path != "primary/status" {
		t.Errorf("clear request = %+v", api.calls[1])
	}
}

// TestProcesses tests the process list request
func TestProcesses(t *testing.T) {
	api := &fakeAPI{code: 200, body: `[{"type":"primary"},{"type":"nfv","client-id":1},{"type":"nfv","client-id":2}]`}
	var out bytes.Buffer

	procs, err := NewEngine(api, &out).Processes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(procs) != 3 {
		t.Errorf("got %d processes, want 3", len(procs))
	}
	if ids := SecondaryIDs(procs); len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("SecondaryIDs() = %v", ids)
	}
	if out.Len() != 0 {
		t.Errorf("Processes() must not print, got %q", out.String())
	}
	if api.calls[0].Path != "processes" {
		t.Errorf("path = %q", api.calls[0].Path)
	}
}

// TestProcessesAbsorbed tests that an absorbed status yields no list
func TestProcessesAbsorbed(t *testing.T) {
	procs, err := NewEngine(&fakeAPI{code: 404}, &bytes.Buffer{}).Processes(context.Background())
	if err != nil || procs != nil {
		t.Errorf("Processes() = %v, %v; want nil, nil", procs, err)
	}
}
