// seehuhn.de/go/pdfview - annotation comment synchronization for PDF viewers
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Comment-sim replays an annotation scenario through the comment
// synchronizer and prints the reconciled comment list together with the
// note indicators a viewer would render.
//
// The scenario is a YAML file listing the document's pages with their
// annotations, live editors and rendered elements:
//
//	pages:
//	  - bounds: {x: 0, y: 0, w: 612, h: 792}
//	    annotations:
//	      - id: 9R
//	        subtype: Highlight
//	        rect: [72, 700, 200, 714]
//	        contents: check this paragraph
//	    elements:
//	      - id: 9R
//	        bounds: {x: 72, y: 78, w: 128, h: 14}
//	overrides:
//	  9R: Squiggly
//
// Pages without a bounds entry count as not rendered, the way a viewer
// virtualizes far-away pages.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/comment"
	"seehuhn.de/go/pdfview/indicator"
	"seehuhn.de/go/pdfview/internal/debug/fakedoc"
	"seehuhn.de/go/pdfview/internal/debug/fakepage"
	"seehuhn.de/go/pdfview/overrides"
)

func main() {
	logLevel := flag.String("log", "warn", `log level ("debug", "info", "warn", "error")`)
	output := flag.String("o", "", "write the report to this file instead of stdout")
	statePath := flag.String("state", "", "keep subtype overrides in this database file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: comment-sim [options] scenario.yaml")
		flag.PrintDefaults()
		os.Exit(1)
	}

	err := run(flag.Arg(0), *output, *statePath, *logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type scenario struct {
	Pages     []*scenarioPage            `yaml:"pages"`
	Overrides map[string]pdfview.Subtype `yaml:"overrides"`
}

type scenarioPage struct {
	// View is the page's PDF view rectangle; fakedoc's default applies
	// when it is missing.
	View *[4]float64 `yaml:"view"`

	// Bounds is the rendered pixel extent of the page container.  A page
	// without bounds is not rendered.
	Bounds *indicator.Bounds `yaml:"bounds"`

	Annotations []*pdfview.RawAnnotation `yaml:"annotations"`
	Editors     []*scenarioEditor        `yaml:"editors"`

	// Rendered elements: live editor widgets, annotation-layer elements
	// and text-layer spans.
	Widgets  []*scenarioWidget  `yaml:"widgets"`
	Elements []*scenarioElement `yaml:"elements"`
	Spans    []indicator.Bounds `yaml:"spans"`
}

type scenarioEditor struct {
	pdfview.Editor `yaml:",inline"`

	// Active marks the editor as having input focus.
	Active bool `yaml:"active"`
}

type scenarioWidget struct {
	UID    string           `yaml:"uid"`
	Bounds indicator.Bounds `yaml:"bounds"`
}

type scenarioElement struct {
	ID     string           `yaml:"id"`
	Bounds indicator.Bounds `yaml:"bounds"`
}

type report struct {
	Comments   []*reportComment `yaml:"comments"`
	Indicators reportIndicators `yaml:"indicators"`
}

type reportComment struct {
	Key     string `yaml:"key"`
	Page    int    `yaml:"page"`
	Subtype string `yaml:"subtype"`
	Source  string `yaml:"source"`
	Author  string `yaml:"author,omitempty"`
	Text    string `yaml:"text,omitempty"`
	HasNote bool   `yaml:"hasNote"`
	Active  bool   `yaml:"active,omitempty"`
}

type reportIndicators struct {
	Anchors []*reportAnchor `yaml:"anchors"`
	Markers []*reportMarker `yaml:"markers"`

	// Covered counts the text spans which only carry the hover class.
	Covered int `yaml:"covered,omitempty"`
}

type reportAnchor struct {
	Page    int    `yaml:"page"`
	Kind    string `yaml:"kind"`
	Keys    string `yaml:"keys"`
	Primary string `yaml:"primary"`
	Preview string `yaml:"preview,omitempty"`
}

type reportMarker struct {
	Page    int     `yaml:"page"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Keys    string  `yaml:"keys"`
	Primary string  `yaml:"primary"`
	Preview string  `yaml:"preview,omitempty"`
}

type trackedNode struct {
	page int
	kind string
	node *fakepage.Node
}

func run(scenarioPath, output, statePath, logLevel string) error {
	data, err := os.ReadFile(scenarioPath)
	if err != nil {
		return err
	}
	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return fmt.Errorf("%s: %w", scenarioPath, err)
	}
	if len(sc.Pages) == 0 {
		return fmt.Errorf("%s: no pages", scenarioPath)
	}

	logger := pdfview.NewLogger(&pdfview.LogOptions{Level: logLevel})
	defer logger.Sync()

	doc := fakedoc.NewDocument(len(sc.Pages))
	eds := fakedoc.NewEditors()
	surface := fakepage.NewSurface()

	var nodes []*trackedNode
	for i, p := range sc.Pages {
		doc.SetAnnotations(i, p.Annotations...)
		if p.View != nil {
			doc.SetView(i, *p.View)
		}
		for _, se := range p.Editors {
			ed := se.Editor
			uid := eds.Add(i, &ed)
			if se.Active {
				eds.SetActive(uid)
			}
		}

		if p.Bounds == nil {
			continue
		}
		pageNo := i + 1
		surface.AddPage(pageNo, *p.Bounds)
		for _, w := range p.Widgets {
			nodes = append(nodes, &trackedNode{
				page: pageNo,
				kind: "editor",
				node: surface.AddEditorNode(pageNo, w.UID, w.Bounds),
			})
		}
		for _, el := range p.Elements {
			nodes = append(nodes, &trackedNode{
				page: pageNo,
				kind: "annotation",
				node: surface.AddAnnotationNode(pageNo, el.ID, el.Bounds),
			})
		}
		for _, b := range p.Spans {
			nodes = append(nodes, &trackedNode{
				page: pageNo,
				kind: "span",
				node: surface.AddSpan(pageNo, b),
			})
		}
	}

	var store overrides.Store
	if statePath != "" {
		bs, err := overrides.NewBoltStore(statePath, scenarioPath)
		if err != nil {
			return err
		}
		defer bs.Close()
		store = bs
	} else if len(sc.Overrides) > 0 {
		store = overrides.NewMemStore()
	}
	for id, subtype := range sc.Overrides {
		if err := store.Set(id, subtype); err != nil {
			return err
		}
	}

	s := comment.NewSynchronizer(eds, doc, store, &comment.Options{Logger: logger})
	defer s.Close()
	indicator.NewRenderer(surface, s, &indicator.Options{Logger: logger})

	// the renderer registered first, so its rebuild is done once the
	// list arrives here
	lists := make(chan []*comment.Summary, 1)
	var once sync.Once
	s.OnComments(func(list []*comment.Summary) {
		once.Do(func() { lists <- list })
	})
	s.ScheduleSync(true)

	var list []*comment.Summary
	select {
	case list = <-lists:
	case <-time.After(5 * time.Second):
		return errors.New("reconciliation pass did not complete")
	}

	rep := buildReport(list, surface, nodes, len(sc.Pages))
	out, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(output, out, 0o666)
}

func buildReport(list []*comment.Summary, surface *fakepage.Surface, nodes []*trackedNode, numPages int) *report {
	rep := &report{}

	for _, c := range list {
		rep.Comments = append(rep.Comments, &reportComment{
			Key:     string(c.Key),
			Page:    c.PageNumber,
			Subtype: string(c.Subtype),
			Source:  string(c.Source),
			Author:  c.Author,
			Text:    c.Text,
			HasNote: c.HasNote,
			Active:  c.Active,
		})
	}

	for _, tn := range nodes {
		switch {
		case tn.node.HasClass(indicator.ClassAnchor):
			rep.Indicators.Anchors = append(rep.Indicators.Anchors, &reportAnchor{
				Page:    tn.page,
				Kind:    tn.kind,
				Keys:    tn.node.Attr(indicator.AttrKeys),
				Primary: tn.node.Attr(indicator.AttrPrimary),
				Preview: tn.node.Attr(indicator.AttrPreview),
			})
		case tn.node.HasClass(indicator.ClassHasNote):
			rep.Indicators.Covered++
		}
	}

	for page := 1; page <= numPages; page++ {
		for _, m := range surface.Markers(page) {
			pos := m.Pos()
			rep.Indicators.Markers = append(rep.Indicators.Markers, &reportMarker{
				Page:    page,
				X:       pos.X,
				Y:       pos.Y,
				Keys:    m.Attr(indicator.AttrKeys),
				Primary: m.Attr(indicator.AttrPrimary),
				Preview: m.Attr(indicator.AttrPreview),
			})
		}
	}

	return rep
}
