// Package display provides output formatting for sppctl.
//
// This package turns control API payloads into the text the operator reads:
// port statistics of the primary, forwarding state of a secondary, and the
// process list behind "status". Every function writes to the io.Writer it is
// given so the interactive session, the one-shot commands and the tests share
// the same rendering path.
//
// Column layouts are fixed width and stable, as scripts parse them.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// PhyPort is one row of the primary's physical port statistics.
type PhyPort struct {
	ID     int    `json:"id"`
	Rx     uint64 `json:"rx"`
	Tx     uint64 `json:"tx"`
	TxDrop uint64 `json:"tx_drop"`
	Eth    string `json:"eth"`
}

// RingPort is one row of the primary's ring port statistics.
type RingPort struct {
	ID     int    `json:"id"`
	Rx     uint64 `json:"rx"`
	Tx     uint64 `json:"tx"`
	RxDrop uint64 `json:"rx_drop"`
	TxDrop uint64 `json:"tx_drop"`
}

// PrimaryStatus is the payload of GET primary/status. A nil slice means the
// key was absent and the table is not printed.
type PrimaryStatus struct {
	PhyPorts  []PhyPort  `json:"phy_ports"`
	RingPorts []RingPort `json:"ring_ports"`
}

// Patch is one src -> dst forwarding rule of a secondary.
type Patch struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// SecondaryStatus is the payload of GET nfvs/{id}.
type SecondaryStatus struct {
	Status  string   `json:"status"`
	Ports   []string `json:"ports"`
	Patches []Patch  `json:"patches"`
}

// Process is one entry of GET processes.
type Process struct {
	Type     string `json:"type"`
	ClientID int    `json:"client-id"`
}

const (
	phyHeader  = "  ID          rx          tx     tx_drop  mac_addr"
	ringHeader = "  ID          rx          tx     rx_drop     tx_drop"
)

// titleStyle renders section titles. Bound to w so that plain writers such as
// buffers and pipes get no escape sequences.
func titleStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true)
}

// RenderPrimaryStatus writes the physical and ring port tables of the primary.
func RenderPrimaryStatus(w io.Writer, st PrimaryStatus) {
	title := titleStyle(w)

	if st.PhyPorts != nil {
		fmt.Fprintln(w, title.Render("Physical Ports:"))
		fmt.Fprintln(w, phyHeader)
		for _, p := range st.PhyPorts {
			fmt.Fprintf(w, "  %2d  %10d  %10d  %10d  %s\n", p.ID, p.Rx, p.Tx, p.TxDrop, p.Eth)
		}
	}

	if st.RingPorts != nil {
		fmt.Fprintln(w, title.Render("Ring Ports:"))
		fmt.Fprintln(w, ringHeader)
		for _, p := range st.RingPorts {
			fmt.Fprintf(w, "  %2d  %10d  %10d  %10d  %10d\n", p.ID, p.Rx, p.Tx, p.RxDrop, p.TxDrop)
		}
	}
}

// RenderSecondaryStatus writes the running state and the ports of a secondary.
// A port that is the source of a patch is shown with its destination; when
// several patches share a source the first one wins.
func RenderSecondaryStatus(w io.Writer, st SecondaryStatus) {
	fmt.Fprintf(w, "- status: %s\n", st.Status)
	fmt.Fprintln(w, "- ports:")
	for _, port := range st.Ports {
		if dst, ok := patchedTo(st.Patches, port); ok {
			fmt.Fprintf(w, "  - %s -> %s\n", port, dst)
		} else {
			fmt.Fprintf(w, "  - %s\n", port)
		}
	}
}

func patchedTo(patches []Patch, port string) (string, bool) {
	for _, p := range patches {
		if p.Src == port {
			return p.Dst, true
		}
	}
	return "", false
}

// RenderProcesses writes the process summary behind the "status" command.
func RenderProcesses(w io.Writer, procs []Process) {
	primary := "not running"
	var secondaries []Process
	for _, p := range procs {
		switch p.Type {
		case "primary":
			primary = "running"
		case "nfv":
			secondaries = append(secondaries, p)
		}
	}

	fmt.Fprintln(w, "- primary:")
	fmt.Fprintf(w, "  - status: %s\n", primary)
	fmt.Fprintln(w, "- secondary:")
	fmt.Fprintln(w, "  - processes:")
	for _, p := range secondaries {
		fmt.Fprintf(w, "    %d: %s:%d\n", p.ClientID, p.Type, p.ClientID)
	}
}
