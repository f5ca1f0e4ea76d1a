package i18n

import (
	"context"
	"encoding/json"
	"maps"
	"slices"
	"testing"

	"github.com/pavelanni/wordquiz/internal/model"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	return Context(lang)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "AppTitle"); got != "Word Quiz" {
		t.Errorf("T(AppTitle) = %q, want 'Word Quiz'", got)
	}
	if got := T(ctx, "Correct"); got != "Correct!" {
		t.Errorf("T(Correct) = %q, want 'Correct!'", got)
	}
}

func TestTranslateJapanese(t *testing.T) {
	ctx := initLang(t, "ja")

	if got := T(ctx, "AppTitle"); got != "単語クイズ" {
		t.Errorf("T(AppTitle) = %q, want '単語クイズ'", got)
	}
	got := Td(ctx, "Incorrect", map[string]any{"Expected": "リンゴ"})
	if got != "不正解。正解は「リンゴ」です。" {
		t.Errorf("Td(Incorrect) = %q", got)
	}
}

func TestPluralTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Tp(ctx, "WordsStored", 1); got != "1 word stored." {
		t.Errorf("Tp(WordsStored, 1) = %q, want '1 word stored.'", got)
	}
	if got := Tp(ctx, "WordsStored", 5); got != "5 words stored." {
		t.Errorf("Tp(WordsStored, 5) = %q, want '5 words stored.'", got)
	}

	ja := initLang(t, "ja")
	if got := Tp(ja, "Imported", 3); got != "3 語をインポートしました。" {
		t.Errorf("Tp(Imported, 3) = %q", got)
	}
}

func TestPrompter(t *testing.T) {
	tests := []struct {
		lang string
		dir  model.Direction
		cue  string
		want string
	}{
		{"en", model.Forward, "apple", `What does "apple" mean?`},
		{"en", model.Reverse, "リンゴ", `Which word means "リンゴ"?`},
		{"ja", model.Forward, "apple", "「apple」の意味は？"},
		{"ja", model.Reverse, "リンゴ", "「リンゴ」の英単語は？"},
	}
	for _, tt := range tests {
		t.Run(tt.lang+"/"+string(tt.dir), func(t *testing.T) {
			prompt := Prompter(initLang(t, tt.lang))
			if got := prompt(tt.dir, tt.cue); got != tt.want {
				t.Errorf("prompt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModeLabel(t *testing.T) {
	ctx := initLang(t, "en")

	if got := ModeLabel(ctx, model.ModeFive); got != "Five questions" {
		t.Errorf("ModeLabel(five) = %q", got)
	}
	if got := ModeLabel(ctx, model.Mode("other")); got != "other" {
		t.Errorf("ModeLabel(other) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	keys := func(lang string) []string {
		data, err := localeFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			t.Fatalf("read %s catalog: %v", lang, err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("parse %s catalog: %v", lang, err)
		}
		return slices.Sorted(maps.Keys(m))
	}

	want := keys(Supported[0])
	for _, lang := range Supported[1:] {
		if got := keys(lang); !slices.Equal(got, want) {
			t.Errorf("%s catalog keys differ from %s:\n got %v\nwant %v", lang, Supported[0], got, want)
		}
	}
}
