package content_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/myflomo/pkg/content"
)

func TestExtractTags(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "hello #foo #bar baz", []string{"foo", "bar"}},
		{"adjacent hashes stay one token", "#a#b", []string{"a#b"}},
		{"bare hash", "# heading and # more", []string{}},
		{"trailing hash", "ends with #", []string{}},
		{"double hash", "##foo", []string{"foo"}},
		{"hash after a word", "issue#42", []string{"42"}},
		{"hash after cjk text", "买牛奶#todo", []string{"todo"}},
		{"hash after punctuation", "note:#work (#idea)", []string{"work", "idea)"}},
		{"duplicates collapse", "#x text #x #y", []string{"x", "y"}},
		{"newline separated", "line one #a\n#b line two", []string{"a", "b"}},
		{"unicode", "今天 #读书 #日记", []string{"读书", "日记"}},
		{"punctuation kept", "#todo, then", []string{"todo,"}},
		{"empty", "", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, content.ExtractTags(tc.in))
		})
	}
}

func TestExtractTags_Properties(t *testing.T) {
	inputs := []string{
		"hello #foo #bar baz",
		"#a#b #c",
		"no tags at all",
		"#one\n#two\t#three #one",
	}

	for _, in := range inputs {
		once := content.ExtractTags(in)
		twice := content.ExtractTags(in + " " + in)
		assert.Equal(t, once, twice, "repeating content must not add tags: %q", in)

		for _, tag := range once {
			assert.False(t, strings.HasPrefix(tag, "#"), "tag %q keeps its hash", tag)
			assert.False(t, strings.ContainsAny(tag, " \t\n"), "tag %q has whitespace", tag)
		}
	}
}

func TestExtractImageReferences(t *testing.T) {
	in := "look ![图片](local-image://abc) and ![](local-image://def) again ![图片](local-image://abc)"

	got := content.ExtractImageReferences(in)

	assert.Equal(t, []content.ImageRef{
		{Alt: "图片", Ref: "local-image://abc"},
		{Alt: "", Ref: "local-image://def"},
		{Alt: "图片", Ref: "local-image://abc"},
	}, got)
	assert.Empty(t, content.ExtractImageReferences("plain [link](x)"))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "hello baz", content.StripTags("#foo hello baz #bar"))
	assert.Equal(t, "", content.StripTags("  #only  "))
	assert.Equal(t, "issue stays", content.StripTags("issue#42 stays"))
	assert.Equal(t, "买牛奶", content.StripTags("买牛奶#todo"))
}

func TestCountCharacters(t *testing.T) {
	assert.Equal(t, 5, content.CountCharacters("hello"))
	assert.Equal(t, 4, content.CountCharacters("你好世界"))
	assert.Equal(t, 0, content.CountCharacters(""))
}
