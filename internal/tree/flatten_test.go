package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func flatPaths(rows []FlatNode) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Node.Path)
	}

	return out
}

func TestFlatten(t *testing.T) {
	dt := NewParser(nil, nil).BuildTree(wideRoot(), 5, 0)

	all := Flatten(dt, nil)
	assert.Equal(t, []string{
		"targetBody:Wide/A", "targetBody:Wide/A/x", "targetBody:Wide/A/y",
		"targetBody:Wide/B", "targetBody:Wide/B/x", "targetBody:Wide/B/y",
		"targetBody:Wide/C", "targetBody:Wide/C/x", "targetBody:Wide/C/y",
	}, flatPaths(all))
	assert.Equal(t, 0, all[0].Depth)
	assert.Equal(t, 1, all[1].Depth)

	expanded := map[string]bool{"targetBody:Wide/B": true}
	rows := Flatten(dt, func(path string) bool { return expanded[path] })
	assert.Equal(t, []string{
		"targetBody:Wide/A",
		"targetBody:Wide/B", "targetBody:Wide/B/x", "targetBody:Wide/B/y",
		"targetBody:Wide/C",
	}, flatPaths(rows))
}

func TestFlatten_DoesNotParse(t *testing.T) {
	dt := NewParser(nil, nil).BuildTree(wideRoot(), 1, 0)

	rows := Flatten(dt, func(string) bool { return true })
	assert.Len(t, rows, 3)

	for _, r := range rows {
		assert.False(t, r.Node.IsParsed)
	}

	assert.Nil(t, Flatten(nil, nil))
}
