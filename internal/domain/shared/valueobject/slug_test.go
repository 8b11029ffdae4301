package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
		want  string
	}{
		{"brand and model", []string{"Samsung", "Galaxy A16 128GB"}, "samsung-galaxy-a16-128gb"},
		{"collapses separators", []string{"Tecno  Spark -- 20"}, "tecno-spark-20"},
		{"strips punctuation", []string{"iPhone 15 Pro (Max)!"}, "iphone-15-pro-max"},
		{"empty input", nil, ""},
		{"blank parts", []string{"", "  "}, ""},
		{"non-ascii dropped", []string{"Café 4K"}, "caf-4k"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.parts...))
		})
	}
}
