// Package dispatch translates validated operator commands into control API
// requests and interprets the responses.
//
// Every request follows the same response policy:
//
//	no response            -> transport error, nothing printed
//	expected status code   -> success action (confirmation or formatted payload)
//	400, 404, 500          -> absorbed silently
//	anything else          -> protocol error "Error: unknown response."
//
// The engine never retries and never caches; each command is one round trip.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/concave-dev/spp/cmd/sppctl/client"
	"github.com/concave-dev/spp/cmd/sppctl/display"
	"github.com/concave-dev/spp/internal/cmderr"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/validate"
)

// absorbedCodes are answered by the control API for common not-found and
// conflict outcomes. They are logged but not reported to the operator.
var absorbedCodes = []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError}

// Engine sends commands to the primary and the secondaries.
type Engine struct {
	api client.ControlAPI
	out io.Writer

	// terminate is called once per secondary by TerminateSecondaries.
	terminate func(ctx context.Context, id int) error
}

// NewEngine creates an engine writing operator output to out.
func NewEngine(api client.ControlAPI, out io.Writer) *Engine {
	e := &Engine{api: api, out: out}
	e.terminate = e.Terminate
	return e
}

func (e *Engine) printf(format string, v ...any) {
	fmt.Fprintf(e.out, format+"\n", v...)
}

// expect applies the response policy to one call. onSuccess runs only when
// the response carries the expected status code.
func expect(op string, resp *client.Response, err error, code int, onSuccess func(*client.Response) error) error {
	if resp == nil {
		if err == nil {
			err = fmt.Errorf("%s: no response", op)
		}
		return cmderr.Transport(err)
	}

	switch {
	case resp.StatusCode == code:
		return onSuccess(resp)
	case slices.Contains(absorbedCodes, resp.StatusCode):
		logging.Debug("%s absorbed status %d", op, resp.StatusCode)
		return nil
	default:
		logging.Warn("%s returned unexpected status %d", op, resp.StatusCode)
		return cmderr.Protocol(op, resp.StatusCode)
	}
}

// Primary runs one of the primary commands: status, clear or exit.
func (e *Engine) Primary(ctx context.Context, cmd string) error {
	logging.Info("Receive pri command: '%s'", cmd)

	switch cmd {
	case "status":
		resp, err := e.api.Get(ctx, "primary/status")
		return expect("GET primary/status", resp, err, http.StatusOK, func(r *client.Response) error {
			var st display.PrimaryStatus
			if err := r.DecodeJSON(&st); err != nil {
				return cmderr.Protocol("GET primary/status", r.StatusCode)
			}
			display.RenderPrimaryStatus(e.out, st)
			return nil
		})

	case "clear":
		resp, err := e.api.Delete(ctx, "primary/status")
		return expect("DELETE primary/status", resp, err, http.StatusNoContent, func(*client.Response) error {
			e.printf("Clear port statistics.")
			return nil
		})

	case "exit":
		e.printf(`"pri; exit" is deprecated.`)
		return nil

	default:
		return cmderr.Validation("Invalid pri command: '%s'", cmd)
	}
}

// portRequest is the body of PUT nfvs/{id}/ports.
type portRequest struct {
	Action string `json:"action"`
	Port   string `json:"port"`
}

// forwardRequest is the body of PUT nfvs/{id}/forward.
type forwardRequest struct {
	Action string `json:"action"`
}

// patchRequest is the body of PUT nfvs/{id}/patches.
type patchRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// Secondary runs a secondary command on secondary id. Malformed commands are
// rejected before any request is sent.
func (e *Engine) Secondary(ctx context.Context, id int, cmd string) error {
	if !validate.ValidateSecondary(cmd) {
		return cmderr.Validation("invalid cmd")
	}
	logging.Info("Receive sec command: %d '%s'", id, cmd)

	tokens := strings.Fields(cmd)
	name, params := tokens[0], tokens[1:]

	switch name {
	case validate.CmdStatus:
		path := fmt.Sprintf("nfvs/%d", id)
		resp, err := e.api.Get(ctx, path)
		return expect("GET "+path, resp, err, http.StatusOK, func(r *client.Response) error {
			var st display.SecondaryStatus
			if err := r.DecodeJSON(&st); err != nil {
				return cmderr.Protocol("GET "+path, r.StatusCode)
			}
			display.RenderSecondaryStatus(e.out, st)
			return nil
		})

	case validate.CmdAdd, validate.CmdDel:
		path := fmt.Sprintf("nfvs/%d/ports", id)
		resp, err := e.api.Put(ctx, path, portRequest{Action: name, Port: params[0]})
		return expect("PUT "+path, resp, err, http.StatusNoContent, func(*client.Response) error {
			if name == validate.CmdAdd {
				e.printf("Add %s.", params[0])
			} else {
				e.printf("Delete %s.", params[0])
			}
			return nil
		})

	case validate.CmdForward, validate.CmdStop:
		path := fmt.Sprintf("nfvs/%d/forward", id)
		action, done := "start", "Start forwarding."
		if name == validate.CmdStop {
			action, done = "stop", "Stop forwarding."
		}
		resp, err := e.api.Put(ctx, path, forwardRequest{Action: action})
		return expect("PUT "+path, resp, err, http.StatusNoContent, func(*client.Response) error {
			e.printf("%s", done)
			return nil
		})

	case validate.CmdPatch:
		path := fmt.Sprintf("nfvs/%d/patches", id)
		if params[0] == validate.PatchReset {
			resp, err := e.api.Delete(ctx, path)
			return expect("DELETE "+path, resp, err, http.StatusNoContent, func(*client.Response) error {
				e.printf("Clear all of patches.")
				return nil
			})
		}
		resp, err := e.api.Put(ctx, path, patchRequest{Src: params[0], Dst: params[1]})
		return expect("PUT "+path, resp, err, http.StatusNoContent, func(*client.Response) error {
			e.printf("Patch ports (%s -> %s).", params[0], params[1])
			return nil
		})

	case validate.CmdExit:
		e.printf("do nothing.")
		return nil
	}

	return cmderr.Validation("Invalid command \"%s\".", name)
}

// Processes fetches the list of processes attached to the control API. The
// returned slice is nil when the list could not be obtained.
func (e *Engine) Processes(ctx context.Context) ([]display.Process, error) {
	var procs []display.Process
	resp, err := e.api.Get(ctx, "processes")
	err = expect("GET processes", resp, err, http.StatusOK, func(r *client.Response) error {
		if err := r.DecodeJSON(&procs); err != nil {
			return cmderr.Protocol("GET processes", r.StatusCode)
		}
		return nil
	})
	return procs, err
}

// SecondaryIDs returns the client ids of the secondaries in procs.
func SecondaryIDs(procs []display.Process) []int {
	var ids []int
	for _, p := range procs {
		if p.Type == "nfv" {
			ids = append(ids, p.ClientID)
		}
	}
	return ids
}

// Terminate asks the control API to stop secondary id.
func (e *Engine) Terminate(ctx context.Context, id int) error {
	path := fmt.Sprintf("nfvs/%d", id)
	resp, err := e.api.Delete(ctx, path)
	return expect("DELETE "+path, resp, err, http.StatusNoContent, func(*client.Response) error {
		e.printf("Terminate nfv:%d.", id)
		return nil
	})
}
