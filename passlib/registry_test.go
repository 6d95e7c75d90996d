// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passlib

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/rendergraph"
)

type nopPass struct{ label string }

func (p *nopPass) Reflect() rendergraph.Reflection             { return rendergraph.Reflection{} }
func (p *nopPass) SetInput(string, rendergraph.Resource) bool  { return false }
func (p *nopPass) SetOutput(string, rendergraph.Resource) bool { return false }
func (p *nopPass) Output(string) rendergraph.Resource          { return nil }
func (p *nopPass) Validate() error                             { return nil }
func (p *nopPass) Execute(rendergraph.RenderContext) error     { return nil }
func (p *nopPass) SetScene(rendergraph.Scene)                  {}
func (p *nopPass) OnResizeSwapChain(rendergraph.SwapChain)     {}

func nopFactory(params Params) (rendergraph.Pass, error) {
	return &nopPass{label: params.String("label", "default")}, nil
}

func TestRegistryRegisterAndCreate(t *testing.T) {
	r := NewRegistry()
	r.Register("Nop", "does nothing", nopFactory)

	p, err := r.Create("Nop", Params{"label": "custom"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := p.(*nopPass).label; got != "custom" {
		t.Errorf("label = %q, want custom", got)
	}

	p, err = r.Create("Nop", nil)
	if err != nil {
		t.Fatalf("Create(nil params) error = %v", err)
	}
	if got := p.(*nopPass).label; got != "default" {
		t.Errorf("label = %q, want default", got)
	}
}

func TestRegistryCreateUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Create("Missing", nil)
	if !errors.Is(err, ErrUnknownPass) {
		t.Fatalf("Create() error = %v, want ErrUnknownPass", err)
	}
	var unknown *UnknownPassError
	if !errors.As(err, &unknown) || unknown.Name != "Missing" {
		t.Errorf("error = %#v, want UnknownPassError{Name: Missing}", err)
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	if len(r.List()) != 0 {
		t.Fatal("new registry should be empty")
	}
	for _, name := range []string{"Tonemap", "Clear", "Record"} {
		r.Register(name, "", nopFactory)
	}
	if got := r.List(); !slices.Equal(got, []string{"Clear", "Record", "Tonemap"}) {
		t.Errorf("List() = %v", got)
	}

	r.Unregister("Record")
	r.Unregister("Record")
	if got := r.List(); !slices.Equal(got, []string{"Clear", "Tonemap"}) {
		t.Errorf("List() after Unregister = %v", got)
	}
}

func TestRegistryReplaceAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register("Nop", "first", nopFactory)
	r.Register("Nop", "second", nopFactory)

	e, ok := r.Get("Nop")
	if !ok || e.Description != "second" || e.Name != "Nop" {
		t.Errorf("Get() = %+v, %v", e, ok)
	}
	if _, ok := r.Get("Missing"); ok {
		t.Error("Get(Missing) should report false")
	}
}

func TestGlobalRegistry(t *testing.T) {
	Register("passlibTestNop", "test", nopFactory)
	t.Cleanup(func() { Unregister("passlibTestNop") })

	if !slices.Contains(List(), "passlibTestNop") {
		t.Fatalf("List() = %v", List())
	}
	if _, ok := Get("passlibTestNop"); !ok {
		t.Error("Get() should find the entry")
	}
	if _, err := Create("passlibTestNop", nil); err != nil {
		t.Errorf("Create() error = %v", err)
	}
}
