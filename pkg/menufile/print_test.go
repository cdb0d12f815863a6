// SPDX-License-Identifier: MPL-2.0

package menufile

import (
	"strings"
	"testing"
)

func TestFprint(t *testing.T) {
	t.Parallel()

	doc := `<Menu>
  <Name>Apps &amp; Tools</Name>
  <MergeFile type="parent"/>
  <Include><Category>Game</Category></Include>
  <Layout><Merge type="menus"/><Separator/></Layout>
</Menu>`
	root, err := Parse(strings.NewReader(doc), "a.menu")
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := Fprint(&b, root); err != nil {
		t.Fatal(err)
	}

	want := `<Menu>
  <Name>Apps &amp; Tools</Name>
  <MergeFile type="parent"/>
  <Include>
    <Category>Game</Category>
  </Include>
  <Layout>
    <Merge type="menus"/>
    <Separator/>
  </Layout>
</Menu>
`
	if b.String() != want {
		t.Errorf("Fprint() =\n%s\nwant\n%s", b.String(), want)
	}
}
