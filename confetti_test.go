package confetti

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocument_String_FlatDirectives(t *testing.T) {
	doc, err := ParseString("server listen 80\nserver listen 443\n", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "<server> <listen> <80>\n<server> <listen> <443>\n"
	if got := doc.String(); got != want {
		t.Fatalf("snapshot mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestDocument_String_NestedBlock(t *testing.T) {
	doc, err := ParseString("http {\n  server {\n    listen 80\n  }\n}\n", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "<http> [\n    <server> [\n        <listen> <80>\n    ]\n]\n"
	if got := doc.String(); got != want {
		t.Fatalf("snapshot mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestDocument_String_EmptyBlockOmitsBrackets(t *testing.T) {
	doc, err := ParseString("x {}\ny {}\nz {}\n", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "<x>\n<y>\n<z>\n"
	if got := doc.String(); got != want {
		t.Fatalf("expected empty blocks to render bare, got %q, want %q", got, want)
	}
}

func TestParseString_AndParse_Agree(t *testing.T) {
	src := "foo bar\n"
	docA, errA := ParseString(src, Options{})
	docB, errB := Parse([]byte(src), Options{})
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if docA.String() != docB.String() {
		t.Fatalf("Parse and ParseString disagree:\n%q\n%q", docA.String(), docB.String())
	}
}

func TestParse_ReturnsNilDocumentOnError(t *testing.T) {
	doc, err := ParseString("foo }\n", Options{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	if doc != nil {
		t.Fatalf("expected nil Document on error, got %+v", doc)
	}
}

func TestFormatError(t *testing.T) {
	_, err := ParseString("foo }\n", Options{})
	if err == nil {
		t.Fatalf("expected an error")
	}
	want := "error: found '}' without matching '{'\n"
	if got := FormatError(err); got != want {
		t.Fatalf("FormatError mismatch:\n got: %q\nwant: %q", got, want)
	}
	if got := FormatError(nil); got != "" {
		t.Fatalf("FormatError(nil) should be empty, got %q", got)
	}
}

func TestParse_QuotedArgumentsRoundTripThroughSnapshot(t *testing.T) {
	doc, err := ParseString(`greeting "hello world"` + "\n", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "<greeting> <hello world>\n"
	if got := doc.String(); got != want {
		t.Fatalf("snapshot mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestParse_ArgumentTreeShape(t *testing.T) {
	doc, err := ParseString("a b {\n  c d\n}\n", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := []Directive{
		{
			Arguments: []Argument{{Text: "a", Kind: ArgBare}, {Text: "b", Kind: ArgBare}},
			Children: []Directive{
				{Arguments: []Argument{{Text: "c", Kind: ArgBare}, {Text: "d", Kind: ArgBare}}},
			},
		},
	}

	// Span carries source-position noise irrelevant to tree shape, so
	// it's ignored in this comparison.
	ignoreSpans := cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Span"
	}, cmp.Ignore())

	if diff := cmp.Diff(want, doc.Directives, ignoreSpans); diff != "" {
		t.Fatalf("directive tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MalformedUTF8Rejected(t *testing.T) {
	_, err := Parse([]byte("foo \xff bar\n"), Options{})
	if err == nil {
		t.Fatalf("expected MalformedUtf8 error")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != MalformedUtf8 {
		t.Fatalf("expected MalformedUtf8, got %v", err)
	}
}

func TestParse_InvalidOctetSequenceRejected(t *testing.T) {
	_, err := Parse([]byte{0xF0, 0x28, 0x8C, 0xBC}, Options{})
	if err == nil {
		t.Fatalf("expected MalformedUtf8 error")
	}
	perr, ok := err.(*Error)
	if !ok || perr.Kind != MalformedUtf8 {
		t.Fatalf("expected MalformedUtf8, got %v", err)
	}
}

func TestParse_CtrlZTerminatesInputCleanly(t *testing.T) {
	doc, err := ParseString("foo\u001A", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "<foo>\n"
	if got := doc.String(); got != want {
		t.Fatalf("snapshot mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestParse_CtrlZMidArgumentErrors(t *testing.T) {
	_, err := ParseString("fo\u001Ao", Options{})
	perr, ok := err.(*Error)
	if !ok || perr.Kind != IllegalCharacter || !perr.HasRune || perr.Rune != 0x1A {
		t.Fatalf("expected illegal character U+001A, got %v", err)
	}
}

func TestParse_LineContinuationGluedOntoArgumentErrors(t *testing.T) {
	_, err := ParseString("foo\\\nbar", Options{})
	perr, ok := err.(*Error)
	if !ok || perr.Kind != IllegalEscapeCharacter {
		t.Fatalf("expected IllegalEscapeCharacter, got %v", err)
	}
}

func TestParse_LineContinuationJoinsBareArguments(t *testing.T) {
	doc, err := ParseString("foo \\\nbar", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "<foo> <bar>\n"
	if got := doc.String(); got != want {
		t.Fatalf("snapshot mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestParse_LineContinuationInTripleQuotedIsIncompleteEscape(t *testing.T) {
	_, err := ParseString(`"""foo\`+"\n"+`bar"""`, Options{})
	perr, ok := err.(*Error)
	if !ok || perr.Kind != IncompleteEscapeSequence {
		t.Fatalf("expected IncompleteEscapeSequence, got %v", err)
	}
}

func TestParse_DoubleSemicolonErrors(t *testing.T) {
	_, err := ParseString("foo;;bar", Options{})
	perr, ok := err.(*Error)
	if !ok || perr.Kind != UnexpectedSemicolon {
		t.Fatalf("expected UnexpectedSemicolon, got %v", err)
	}
}

func TestParse_EmptyBlocksAcrossThreeDirectives(t *testing.T) {
	doc, err := ParseString("x{}y {   } \nz{\n\n }\n", Options{})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := "<x>\n<y>\n<z>\n"
	if got := doc.String(); got != want {
		t.Fatalf("snapshot mismatch:\n got: %q\nwant: %q", got, want)
	}
}
