package ctlmock

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
)

type processEntry struct {
	Type     string `json:"type"`
	ClientID *int   `json:"client-id,omitempty"`
}

type portBody struct {
	Action string `json:"action" binding:"required,oneof=add del"`
	Port   string `json:"port" binding:"required"`
}

type forwardBody struct {
	Action string `json:"action" binding:"required,oneof=start stop"`
}

type patchBody struct {
	Src string `json:"src" binding:"required"`
	Dst string `json:"dst" binding:"required"`
}

// setupRoutes registers the spp-ctl endpoints
func (s *Server) setupRoutes(router *gin.Engine) {
	v1 := router.Group("/v1")
	{
		v1.GET("/processes", s.handleProcesses)

		v1.GET("/primary/status", s.handlePrimaryStatus)
		v1.DELETE("/primary/status", s.handlePrimaryClear)

		v1.GET("/nfvs/:id", s.withSecondary(s.handleSecondaryStatus))
		v1.DELETE("/nfvs/:id", s.handleSecondaryTerminate)
		v1.PUT("/nfvs/:id/ports", s.withSecondary(s.handlePorts))
		v1.PUT("/nfvs/:id/forward", s.withSecondary(s.handleForward))
		v1.PUT("/nfvs/:id/patches", s.withSecondary(s.handlePatch))
		v1.DELETE("/nfvs/:id/patches", s.withSecondary(s.handlePatchReset))
	}
}

// withSecondary resolves the :id parameter. Handlers run with s.mu held.
func (s *Server) withSecondary(h func(c *gin.Context, sec *secondary)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		sec, ok := s.secondaries[id]
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such secondary"})
			return
		}
		h(c, sec)
	}
}

func (s *Server) handleProcesses(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	procs := []processEntry{}
	if s.primary {
		procs = append(procs, processEntry{Type: "primary"})
	}
	ids := make([]int, 0, len(s.secondaries))
	for id := range s.secondaries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		procs = append(procs, processEntry{Type: "nfv", ClientID: &id})
	}
	c.JSON(http.StatusOK, procs)
}

func (s *Server) handlePrimaryStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primary {
		c.JSON(http.StatusNotFound, gin.H{"error": "primary not running"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"phy_ports": s.phyPorts, "ring_ports": s.ringPorts})
}

func (s *Server) handlePrimaryClear(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primary {
		c.JSON(http.StatusNotFound, gin.H{"error": "primary not running"})
		return
	}
	for i := range s.phyPorts {
		s.phyPorts[i].Rx, s.phyPorts[i].Tx, s.phyPorts[i].TxDrop = 0, 0, 0
	}
	for i := range s.ringPorts {
		s.ringPorts[i] = ringPort{ID: s.ringPorts[i].ID}
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSecondaryStatus(c *gin.Context, sec *secondary) {
	c.JSON(http.StatusOK, sec)
}

func (s *Server) handleSecondaryTerminate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid client id"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.secondaries[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such secondary"})
		return
	}
	delete(s.secondaries, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePorts(c *gin.Context, sec *secondary) {
	var body portBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	idx := slices.Index(sec.Ports, body.Port)
	switch body.Action {
	case "add":
		if idx >= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "port already added"})
			return
		}
		sec.Ports = append(sec.Ports, body.Port)
	case "del":
		if idx < 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no such port"})
			return
		}
		sec.Ports = slices.Delete(sec.Ports, idx, idx+1)
		sec.Patches = slices.DeleteFunc(sec.Patches, func(p Patch) bool {
			return p.Src == body.Port || p.Dst == body.Port
		})
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleForward(c *gin.Context, sec *secondary) {
	var body forwardBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.Action == "start" {
		sec.Status = "running"
	} else {
		sec.Status = "idling"
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePatch(c *gin.Context, sec *secondary) {
	var body patchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !slices.Contains(sec.Ports, body.Src) || !slices.Contains(sec.Ports, body.Dst) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "port not added"})
		return
	}
	sec.Patches = append(sec.Patches, Patch{Src: body.Src, Dst: body.Dst})
	c.Status(http.StatusNoContent)
}

func (s *Server) handlePatchReset(c *gin.Context, sec *secondary) {
	sec.Patches = []Patch{}
	c.Status(http.StatusNoContent)
}
