package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSink struct {
	presents int
	err      error
}

func (c *countingSink) Present(s *Scene) error {
	c.presents++
	return c.err
}

func newTestScene() (*Scene, *countingSink) {
	s := NewScene(240, 135)
	s.Add(Element{ID: "title", Kind: KindText, Text: "Roosevelt Island", Scale: 2, Color: 0xFFFFFF})
	s.Add(Element{ID: "dot", Kind: KindCircle, X: 14, Y: 85, W: 4, Color: NoColor, Outline: 0x808080})
	sink := &countingSink{}
	s.Attach(sink)
	return s, sink
}

func TestScene_FlushOnlyWhenChanged(t *testing.T) {
	s, sink := newTestScene()

	require.NoError(t, s.Flush())
	assert.Equal(t, 1, sink.presents)

	s.SetText("title", "Roosevelt Island")
	s.SetHidden("dot", false)
	require.NoError(t, s.Flush())
	assert.Equal(t, 1, sink.presents, "identical values are not changes")

	s.SetColor("dot", 0x3236A6)
	require.NoError(t, s.Flush())
	assert.Equal(t, 2, sink.presents)
	assert.Equal(t, uint64(2), s.Frame())

	e, ok := s.Element("dot")
	require.True(t, ok)
	assert.Equal(t, Color(0x3236A6), e.Color)
}

func TestScene_UnknownElementFailsFlush(t *testing.T) {
	s, _ := newTestScene()
	s.SetText("nope", "x")
	err := s.Flush()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
	assert.NoError(t, s.Flush(), "errors are reported once")
}

func TestScene_SinkErrorPropagates(t *testing.T) {
	s, sink := newTestScene()
	sink.err = errors.New("broken pipe")
	assert.ErrorContains(t, s.Flush(), "broken pipe")
}

func TestScene_ElementsKeepDrawOrder(t *testing.T) {
	s, _ := newTestScene()
	s.Add(Element{ID: "title", Kind: KindText, Text: "again"})
	ids := []ElementID{}
	for _, e := range s.Elements() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []ElementID{"title", "dot"}, ids)
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#ff6319", Color(0xFF6319).Hex())
	assert.Equal(t, "", NoColor.Hex())
}
