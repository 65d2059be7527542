package rater

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "plain tags removed",
			input: "<p>Hello <b>world</b></p>",
			want:  "Hello world",
		},
		{
			name:  "script body dropped",
			input: "<p>before</p><script>var hidden = 'secret';</script><p>after</p>",
			want:  "before after",
		},
		{
			name:  "style body dropped",
			input: "<style>body { color: red }</style>본문입니다",
			want:  "본문입니다",
		},
		{
			name:  "entities decoded",
			input: "A &amp; B &lt;tag&gt; &quot;quoted&quot;",
			want:  `A & B <tag> "quoted"`,
		},
		{
			name:  "whitespace collapsed",
			input: "  여러   줄의\n\n텍스트  ",
			want:  "여러 줄의 텍스트",
		},
		{
			name:  "case insensitive script",
			input: "<SCRIPT>alert(1)</SCRIPT>ok",
			want:  "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripTags(tt.input)
			if got != tt.want {
				t.Errorf("StripTags() = %q, want %q", got, tt.want)
			}
		})
	}
}
