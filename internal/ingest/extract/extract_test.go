package extract

import (
	"errors"
	"testing"

	"github.com/rhymebook/rhymebook-backend/internal/ingest/doctree"
)

func mustConvert(t *testing.T, raw string) doctree.Node {
	t.Helper()
	doc, err := doctree.NewConverter().Convert([]byte(raw))
	if err != nil {
		t.Fatalf("convert fixture: %v", err)
	}
	return doc
}

func entryNode(t *testing.T, raw string) doctree.Node {
	t.Helper()
	nodes := EntryNodes(mustConvert(t, raw))
	if len(nodes) != 1 {
		t.Fatalf("fixture entries: got %d, want 1", len(nodes))
	}
	return nodes[0]
}

const zootieXML = `<dictionary><entries>
<entry publish="true">
  <head><headword>zootie</headword></head>
  <forms>
    <form freq="3"><label>zootie</label></form>
    <form freq="1"><label>zooty</label></form>
  </forms>
  <lexemes>
    <lexeme pos="noun">
      <senses>
        <sense id="e11730_n_1">
          <definition>a marijuana cigarette laced with cocaine</definition>
          <etym>probably from zoot suit</etym>
          <domains><domain type="drugs"/></domains>
          <regions><region type="eastCoast"/></regions>
          <synSetRef target="marijuana_products"/>
          <collocates><collocate freq="2" target="e2493_n_1">blunt</collocate></collocates>
          <xrefs>
            <xref type="hasSynonym" target="e9203_n_1" lemma="woolie">woolie</xref>
            <xref>lah</xref>
          </xrefs>
          <examples>
            <example>
              <date>1993-11</date>
              <songTitle>Can It Be All So Simple</songTitle>
              <album>Enter the Wu-Tang</album>
              <artist origin="Staten Island, New York, USA">Raekwon</artist>
              <feat>Ghostface Killah</feat>
              <lyric>Fly joints, a zootie right before the day ends</lyric>
            </example>
            <example>
              <date>1994</date>
              <songTitle>Heaven and Hell</songTitle>
              <artist>Raekwon</artist>
              <lyric>Puffin a zootie, calm</lyric>
            </example>
            <example>
              <date>1995-08-01</date>
              <songTitle>Criminology</songTitle>
              <artist>Raekwon</artist>
              <lyric>Zooties in the hallway</lyric>
            </example>
          </examples>
        </sense>
      </senses>
    </lexeme>
  </lexemes>
</entry>
</entries></dictionary>`

func TestParseEntry_Zootie(t *testing.T) {
	t.Parallel()

	rec, err := ParseEntry(entryNode(t, zootieXML))
	if err != nil {
		t.Fatalf("ParseEntry: %v", err)
	}

	if rec.Slug != "zootie" {
		t.Errorf("slug: got %q, want %q", rec.Slug, "zootie")
	}
	if rec.SortKey != "zootie" || rec.Letter != "z" {
		t.Errorf("sort key/letter: got %q/%q", rec.SortKey, rec.Letter)
	}
	if !rec.Publish {
		t.Error("publish: got false, want true")
	}
	if rec.Snapshot == "" {
		t.Error("snapshot: empty")
	}
	if len(rec.Forms) != 2 {
		t.Fatalf("forms: got %d, want 2", len(rec.Forms))
	}
	if rec.Forms[0].Slug != "zootie" || rec.Forms[0].Frequency != 3 {
		t.Errorf("form[0]: got %+v", rec.Forms[0])
	}

	if len(rec.Lexemes) != 1 {
		t.Fatalf("lexemes: got %d, want 1", len(rec.Lexemes))
	}
	lex := rec.Lexemes[0]
	if lex.PartOfSpeech != "noun" {
		t.Errorf("pos: got %q", lex.PartOfSpeech)
	}
	if len(lex.Senses) != 1 {
		t.Fatalf("senses: got %d, want 1", len(lex.Senses))
	}

	sense := lex.Senses[0]
	if sense.XMLID != "e11730_n_1" {
		t.Errorf("sense xml id: got %q", sense.XMLID)
	}
	if sense.Headword != "zootie" || sense.PartOfSpeech != "noun" {
		t.Errorf("sense context: got %q/%q", sense.Headword, sense.PartOfSpeech)
	}
	if !sense.Publish {
		t.Error("sense publish: inherited flag lost")
	}
	if sense.Etymology == nil || *sense.Etymology != "probably from zoot suit" {
		t.Errorf("etymology: got %v", sense.Etymology)
	}
	if len(sense.Examples) != 3 {
		t.Fatalf("examples: got %d, want 3", len(sense.Examples))
	}

	// Domain label expansion and slugging.
	if len(sense.Domains) != 1 || sense.Domains[0].Slug != "drugs" || sense.Domains[0].Name != "Drugs" {
		t.Errorf("domains: got %+v", sense.Domains)
	}
	if len(sense.Regions) != 1 || sense.Regions[0].Name != "East Coast" || sense.Regions[0].Slug != "east-coast" {
		t.Errorf("regions: got %+v", sense.Regions)
	}
	if sense.SynSet == nil || sense.SynSet.Name != "Marijuana Products" || sense.SynSet.Slug != "marijuana-products" {
		t.Errorf("synset: got %+v", sense.SynSet)
	}

	if len(sense.Collocates) != 1 || sense.Collocates[0].Lemma != "blunt" || sense.Collocates[0].Frequency != 2 {
		t.Errorf("collocates: got %+v", sense.Collocates)
	}

	if len(sense.Xrefs) != 2 {
		t.Fatalf("xrefs: got %d, want 2", len(sense.Xrefs))
	}
	if sense.Xrefs[0].TypeLabel != "Synonym" || sense.Xrefs[0].TargetSlug != "woolie#e9203_n_1" {
		t.Errorf("xref[0]: got %+v", sense.Xrefs[0])
	}
	// No type code: defaults to Related Concept, slug from the raw text.
	if sense.Xrefs[1].TypeLabel != "Related Concept" || sense.Xrefs[1].TargetSlug != "lah" {
		t.Errorf("xref[1]: got %+v", sense.Xrefs[1])
	}

	// Release date completion.
	first := sense.Examples[0]
	if got := first.ReleaseDate.Format("2006-01-02"); got != "1993-11-30" {
		t.Errorf("example[0] date: got %s, want 1993-11-30", got)
	}
	if first.ReleaseDateVerbatim != "1993-11" {
		t.Errorf("example[0] verbatim date: got %q", first.ReleaseDateVerbatim)
	}
	if got := sense.Examples[1].ReleaseDate.Format("2006-01-02"); got != "1994-12-31" {
		t.Errorf("example[1] date: got %s, want 1994-12-31", got)
	}
	if got := sense.Examples[2].ReleaseDate.Format("2006-01-02"); got != "1995-08-01" {
		t.Errorf("example[2] date: got %s, want 1995-08-01", got)
	}

	// Credits and derived song.
	if first.ArtistName != "Raekwon" {
		t.Errorf("artist name: got %q", first.ArtistName)
	}
	if len(first.FeaturedArtists) != 1 || first.FeaturedArtists[0].Slug != "ghostface-killah" {
		t.Errorf("featured: got %+v", first.FeaturedArtists)
	}
	if first.PrimaryArtists[0].Origin != "Staten Island, New York, USA" {
		t.Errorf("origin: got %q", first.PrimaryArtists[0].Origin)
	}
	if first.Song.Slug != "raekwon-can-it-be-all-so-simple" {
		t.Errorf("song slug: got %q", first.Song.Slug)
	}
}

func TestParseEntry_MissingHeadword(t *testing.T) {
	t.Parallel()

	node := entryNode(t, `<entry><head></head></entry>`)
	_, err := ParseEntry(node)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if parseErr.Field != "headword" {
		t.Errorf("field: got %q, want headword", parseErr.Field)
	}
}

func TestParseExample_MissingLyric(t *testing.T) {
	t.Parallel()

	doc := mustConvert(t, `<example><date>1994</date><songTitle>T</songTitle><artist>A</artist></example>`)
	examples := doc.Children("example")
	if len(examples) != 1 {
		t.Fatalf("examples: got %d, want 1", len(examples))
	}
	_, err := ParseExample(examples[0])
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if parseErr.Entity != "example" || parseErr.Field != "lyric" {
		t.Errorf("got %q/%q, want example/lyric", parseErr.Entity, parseErr.Field)
	}
}

func TestParseExample_LyricLinkPositions(t *testing.T) {
	t.Parallel()

	raw := `<example>
  <date>2016-02-05</date>
  <songTitle>Store Run</songTitle>
  <artist>Test Artist</artist>
  <lyric>She like, &quot;Bae, I&apos;m at the store&quot;</lyric>
  <lyricLinks>
    <lyricLink type="entity" position="12">Bae</lyricLink>
  </lyricLinks>
</example>`
	doc := mustConvert(t, raw)

	rec, err := ParseExample(doc.Children("example")[0])
	if err != nil {
		t.Fatalf("ParseExample: %v", err)
	}
	if len(rec.LyricLinks) != 1 {
		t.Fatalf("links: got %d, want 1", len(rec.LyricLinks))
	}
	// Claimed 12, actual single occurrence at 11: corrected down by one.
	if rec.LyricLinks[0].Position != 11 {
		t.Errorf("position: got %d, want 11", rec.LyricLinks[0].Position)
	}
	if !rec.LyricLinks[0].Located {
		t.Error("located: got false, want true")
	}
}

func TestParseExample_LyricLinkUnlocated(t *testing.T) {
	t.Parallel()

	raw := `<example>
  <date>2016</date>
  <songTitle>T</songTitle>
  <artist>A</artist>
  <lyric>nothing matches here</lyric>
  <lyricLinks>
    <lyricLink type="xref" lemma="cheddar" target="e100_n_1" position="7">cheese</lyricLink>
  </lyricLinks>
</example>`
	doc := mustConvert(t, raw)

	rec, err := ParseExample(doc.Children("example")[0])
	if err != nil {
		t.Fatalf("ParseExample: %v", err)
	}
	link := rec.LyricLinks[0]
	if link.Located {
		t.Error("located: got true, want false")
	}
	// Claimed position is kept, compound target slug derived from lemma+id.
	if link.Position != 7 || link.TargetSlug != "cheddar#e100_n_1" {
		t.Errorf("link: got %+v", link)
	}
}

func TestConfirmPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		lyric       string
		text        string
		claimed     int
		wantPos     int
		wantLocated bool
	}{
		{
			name:        "off by one corrected",
			lyric:       `She like, "Bae, I'm at the store"`,
			text:        "Bae",
			claimed:     12,
			wantPos:     11,
			wantLocated: true,
		},
		{
			name:        "already right stays",
			lyric:       `He told 12, "Gimme 12"`,
			text:        "12",
			claimed:     8,
			wantPos:     8,
			wantLocated: true,
		},
		{
			name:        "multiple occurrences trusts claim",
			lyric:       "cash rules, cash moves",
			text:        "cash",
			claimed:     12,
			wantPos:     12,
			wantLocated: true,
		},
		{
			name:        "not found keeps claim unlocated",
			lyric:       "no match here",
			text:        "cheddar",
			claimed:     4,
			wantPos:     4,
			wantLocated: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos, located := ConfirmPosition(tt.lyric, tt.text, tt.claimed)
			if pos != tt.wantPos || located != tt.wantLocated {
				t.Errorf("ConfirmPosition(%q, %q, %d) = (%d, %v), want (%d, %v)",
					tt.lyric, tt.text, tt.claimed, pos, located, tt.wantPos, tt.wantLocated)
			}
		})
	}
}

func TestParsePlaceName(t *testing.T) {
	t.Parallel()

	rec, err := ParsePlaceName("Paris, Texas, USA")
	if err != nil {
		t.Fatalf("ParsePlaceName: %v", err)
	}
	if rec.Name != "Paris" || rec.Slug != "paris-texas-usa" || rec.ParentFullName != "Texas, USA" {
		t.Errorf("got %+v", rec)
	}

	top, err := ParsePlaceName("USA")
	if err != nil {
		t.Fatalf("ParsePlaceName: %v", err)
	}
	if top.ParentFullName != "" || top.Slug != "usa" {
		t.Errorf("got %+v", top)
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	t.Parallel()

	a := entryNode(t, zootieXML)
	b := entryNode(t, zootieXML)
	recA, err := ParseEntry(a)
	if err != nil {
		t.Fatalf("ParseEntry: %v", err)
	}
	recB, err := ParseEntry(b)
	if err != nil {
		t.Fatalf("ParseEntry: %v", err)
	}
	if recA.Snapshot != recB.Snapshot {
		t.Error("snapshot: two conversions of the same source differ")
	}
}
