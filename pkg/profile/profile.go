// Package profile collects an execution histogram of the instructions
// run by the CPU and renders it as a bar chart.
package profile

import (
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/cpu"
	"github.com/thelolagemann/gbsim/internal/types"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Entry is the number of times an instruction was executed.
type Entry struct {
	Name  string
	Count uint64
}

// Profile counts executed instructions by name.
type Profile struct {
	counts map[string]uint64
	total  uint64
}

// New returns an empty profile.
func New() *Profile {
	return &Profile{counts: make(map[string]uint64)}
}

// Trace records instruction. It has the signature of the CPU trace
// hook, so it can be passed to gameboy.WithTrace directly.
func (p *Profile) Trace(_ uint16, instruction cpu.Instruction) {
	p.Record(instruction.Name)
}

// Record counts one execution of name.
func (p *Profile) Record(name string) {
	p.counts[name]++
	p.total++
}

// Total returns the number of recorded executions.
func (p *Profile) Total() uint64 {
	return p.total
}

// Count returns the number of executions of name.
func (p *Profile) Count(name string) uint64 {
	return p.counts[name]
}

// Top returns the n most executed instructions, most executed first.
// Ties are ordered by name. n <= 0 returns every instruction.
func (p *Profile) Top(n int) []Entry {
	entries := make([]Entry, 0, len(p.counts))
	for name, count := range p.counts {
		entries = append(entries, Entry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// WritePNG draws the n most executed instructions as a bar chart and
// writes it to w as a PNG.
func (p *Profile) WritePNG(w io.Writer, n int) error {
	top := p.Top(n)
	if len(top) == 0 {
		return errors.Wrap(types.ErrBadParameter, "profile: nothing recorded")
	}

	values := make(plotter.Values, len(top))
	names := make([]string, len(top))
	for i, e := range top {
		values[i] = float64(e.Count)
		names[i] = e.Name
	}

	plt := plot.New()
	plt.Title.Text = "Instructions executed"
	plt.Y.Label.Text = "Count"
	plt.X.Tick.Label.Rotation = math.Pi / 2

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrapf(types.ErrBadParameter, "profile: %v", err)
	}
	plt.Add(bars)
	plt.NominalX(names...)

	width := vg.Points(math.Max(480, float64(len(top))*20))
	c := vgimg.New(width, vg.Points(360))
	plt.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return errors.Wrapf(types.ErrIO, "profile: %v", err)
	}
	return nil
}
