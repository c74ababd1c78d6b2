// Package ctlmock provides an in-process stand-in for the spp-ctl REST server.
//
// The server keeps a small model of the processes behind spp-ctl: whether the
// primary is running and, per secondary, its forwarding state, ports and
// patches. It answers the same paths and status codes as spp-ctl so that the
// controller can be exercised end to end without DPDK. Every request is
// recorded, and any route can be forced to answer with a fixed status code to
// reproduce error responses.
//
// Used by the client and shell tests, and by "sppctl mock-ctl" for trying the
// controller without a real deployment.
package ctlmock

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/netutil"
	"github.com/gin-gonic/gin"
)

// Request is one request received by the server.
type Request struct {
	Method string
	Path   string // relative to /v1, e.g. "nfvs/1/ports"
	Body   string
}

// Patch is one forwarding rule of a secondary.
type Patch struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

type secondary struct {
	Status  string   `json:"status"`
	Ports   []string `json:"ports"`
	Patches []Patch  `json:"patches"`
}

type phyPort struct {
	ID     int    `json:"id"`
	Rx     uint64 `json:"rx"`
	Tx     uint64 `json:"tx"`
	TxDrop uint64 `json:"tx_drop"`
	Eth    string `json:"eth"`
}

type ringPort struct {
	ID     int    `json:"id"`
	Rx     uint64 `json:"rx"`
	Tx     uint64 `json:"tx"`
	RxDrop uint64 `json:"rx_drop"`
	TxDrop uint64 `json:"tx_drop"`
}

// Server is a fake spp-ctl.
type Server struct {
	mu          sync.Mutex
	primary     bool
	phyPorts    []phyPort
	ringPorts   []ringPort
	secondaries map[int]*secondary
	overrides   map[string]int
	requests    []Request

	router *gin.Engine
}

// New creates a server with a running primary owning two physical ports and
// no secondaries.
func New() *Server {
	// Keep test mode when a test selected it
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		primary: true,
		phyPorts: []phyPort{
			{ID: 0, Eth: "56:48:4f:53:54:00"},
			{ID: 1, Eth: "56:48:4f:53:54:01"},
		},
		ringPorts:   []ringPort{},
		secondaries: make(map[int]*secondary),
		overrides:   make(map[string]int),
	}

	// Gin's own output stays at debug level unless the CLI configured logging
	if logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
	} else {
		gin.DefaultWriter = logging.NewLevelWriter("DEBUG", "gin")
	}
	gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")

	router := gin.New()
	router.Use(loggingMiddleware())
	router.Use(s.recordMiddleware())
	router.Use(s.overrideMiddleware())
	router.Use(gin.Recovery())
	s.setupRoutes(router)
	s.router = router
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetPrimary sets whether the primary is running.
func (s *Server) SetPrimary(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primary = running
}

// AddSecondary registers an idle secondary with the given client id.
func (s *Server) AddSecondary(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secondaries[id] = &secondary{Status: "idling", Ports: []string{"phy:0", "phy:1"}, Patches: []Patch{}}
}

// HasSecondary reports whether secondary id is running.
func (s *Server) HasSecondary(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.secondaries[id]
	return ok
}

// Override forces every request matching method and path (relative to /v1)
// to answer with code and an empty body.
func (s *Server) Override(method, path string, code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[overrideKey(method, path)] = code
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

func overrideKey(method, path string) string {
	return method + " " + strings.TrimPrefix(path, "/")
}

// StartTest starts the server on a loopback port and returns its address
// ("host:port") and a function shutting it down.
func (s *Server) StartTest() (addr string, stop func()) {
	ts := httptest.NewServer(s.router)
	return strings.TrimPrefix(ts.URL, "http://"), ts.Close
}

// Serve runs the server on addr until the listener fails.
func (s *Server) Serve(addr string) error {
	listener, err := netutil.BindTCP(addr)
	if err != nil {
		logging.Error("%v", err)
		return err
	}
	logging.Success("Mock spp-ctl listening on %s", listener.Addr())

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.Serve(listener)
}

// loggingMiddleware traces requests through the CLI logger
func loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logging.Debug("ctlmock: \"%s %s\" %d %s", param.Method, param.Path, param.StatusCode, param.Latency)
		return ""
	})
}

// recordMiddleware stores every request before it is handled
func (s *Server) recordMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: c.Request.Method,
			Path:   strings.TrimPrefix(c.Request.URL.Path, "/v1/"),
			Body:   string(body),
		})
		s.mu.Unlock()

		c.Next()
	}
}

// overrideMiddleware answers overridden routes before they reach a handler
func (s *Server) overrideMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, "/v1/")

		s.mu.Lock()
		code, ok := s.overrides[overrideKey(c.Request.Method, path)]
		s.mu.Unlock()

		if ok {
			c.AbortWithStatus(code)
			return
		}
		c.Next()
	}
}
