package i18n

import "testing"

func TestCatalogsComplete(t *testing.T) {
	for id := range messagesEN {
		if _, ok := messagesZH[id]; !ok {
			t.Errorf("%s has no Chinese message", id)
		}
	}
	for id := range messagesZH {
		if _, ok := messagesEN[id]; !ok {
			t.Errorf("%s has no English message", id)
		}
	}
}

func TestT(t *testing.T) {
	defer SetLanguage(LangEnglish)

	SetLanguage(LangEnglish)
	if got := T(ErrUnknownClass, "Dog"); got != "unknown class 'Dog'" {
		t.Errorf("en: %q", got)
	}

	SetLanguageFromString("zh-cn")
	if GetLanguage() != LangChinese {
		t.Fatal("zh-cn not recognised")
	}
	if got := T(ErrUnknownClass, "Dog"); got == "unknown class 'Dog'" {
		t.Error("Chinese catalog not used")
	}

	SetLanguageFromString("fr")
	if GetLanguage() != LangEnglish {
		t.Error("unknown language should fall back to English")
	}
	SetLanguage(Language("de"))
	if GetLanguage() != LangEnglish {
		t.Error("language without a catalog should fall back to English")
	}
	if got := T("no.such.key"); got != "no.such.key" {
		t.Errorf("missing key = %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"zh", LangChinese},
		{"ZH", LangChinese},
		{" zh-CN ", LangChinese},
		{"zh_TW.UTF-8", LangChinese},
		{"zh-Hans", LangChinese},
		{"zh_HK@stroke", LangChinese},
		{"Chinese (Simplified)_China.936", LangChinese},
		{"en_US.UTF-8", LangEnglish},
		{"zhx", LangEnglish},
		{"C", LangEnglish},
		{"", LangEnglish},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
