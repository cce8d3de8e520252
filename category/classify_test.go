package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		expected Category
	}{
		{"CCTV-1高清", CCTV},
		{"cctv5+", CCTV},
		{"Cctv-13 新闻", CCTV},
		{"湖南卫视", WeiShi},
		{"长沙卫视", WeiShi},
		{"上海东方", Local},
		{"北京纪实", Local},
		{"凤凰中文", HKMOTW},
		{"TVB翡翠台", HKMOTW},
		{"澳视澳门", HKMOTW},
		{"大爱电视", HKMOTW},
		{"长沙新闻综合", City},
		{"苏州新闻", City},
		{"乌鲁木齐汉语", City},
		{"Discovery", Other},
		{"", Other},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Classify(tc.name), "Classify(%q)", tc.name)
	}
}

func TestClassifyPriority(t *testing.T) {
	// A CCTV name also holding a satellite keyword stays CCTV.
	assert.Equal(t, CCTV, Classify("CCTV卫视"))
	// Satellite beats city and province.
	assert.Equal(t, WeiShi, Classify("深圳卫视"))
	assert.Equal(t, WeiShi, Classify("厦门卫视"))
	// Province beats Hong Kong and city keywords.
	assert.Equal(t, Local, Classify("广东珠江"))
	assert.Equal(t, Local, Classify("香港上海"))
	// Broadcaster beats city.
	assert.Equal(t, HKMOTW, Classify("凤凰台州"))
	// "东南" is a province keyword, so 黔东南 never reaches the city rule.
	assert.Equal(t, Local, Classify("黔东南综合"))
}

func TestClassifyCaseSensitivity(t *testing.T) {
	// Only the CCTV rule ignores case.
	assert.Equal(t, HKMOTW, Classify("tvb"))
	assert.Equal(t, HKMOTW, Classify("TVB"))
	assert.Equal(t, Other, Classify("Tvb"))
	assert.Equal(t, Other, Classify("viutv"))
}

func TestClassifyDeterministic(t *testing.T) {
	names := []string{"CCTV-4", "湖北卫视", "重庆新闻", "无锡新闻", "HBO"}
	for _, name := range names {
		first := Classify(name)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Classify(name))
		}
	}
}

func TestCustomTable(t *testing.T) {
	table := Table{
		{Category: City, Keywords: []string{"news"}},
	}
	assert.Equal(t, City, table.Classify("local news"))
	assert.Equal(t, Other, table.Classify("CCTV-1"))
}

func TestLabelsAndOrder(t *testing.T) {
	order := Order()
	assert.Equal(t, []Category{CCTV, WeiShi, Local, HKMOTW, City, Other}, order)

	expected := []string{"央视频道", "卫视频道", "省级频道", "港澳台频道", "市级频道", "其它频道"}
	for i, c := range order {
		assert.Equal(t, expected[i], c.Label())
	}

	order[0] = Other
	assert.Equal(t, CCTV, Order()[0])
}

func TestKeywordTablesHaveNoEmptyEntries(t *testing.T) {
	for _, rule := range DefaultTable {
		assert.NotEmpty(t, rule.Keywords, "rule %s", rule.Category)
		for _, keyword := range rule.Keywords {
			assert.NotEmpty(t, keyword, "rule %s", rule.Category)
		}
	}
	assert.Greater(t, len(cityKeywords), 300)
}

func TestCategoryText(t *testing.T) {
	for _, c := range Order() {
		text, err := c.MarshalText()
		assert.NoError(t, err)
		assert.Equal(t, c.String(), string(text))
	}
	assert.Equal(t, "unknown", Category(99).String())
}
