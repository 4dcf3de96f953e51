package model

// MatchKind 表示検出経路の種別（1 行コメント／ブロックコメント／プレーンテキスト）。
type MatchKind string

const (
	MatchKindUnknown   MatchKind = "unknown"
	MatchKindLine      MatchKind = "line"
	MatchKindBlock     MatchKind = "block"
	MatchKindPlainText MatchKind = "plaintext"
)

// Range はバッファ内のバイトオフセット [Start, End) を表します。
type Range struct {
	Start int       `json:"start"`
	End   int       `json:"end"`
	Kind  MatchKind `json:"kind,omitempty"`
}

// Len は範囲のバイト長を返します。
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Position は 0 始まりの行・文字（rune）位置です。
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Annotation はレンダラが収集した 1 件のタグ付きコメントを表します。
type Annotation struct {
	File   string    `json:"file"`
	Lang   string    `json:"lang,omitempty"`
	Tag    string    `json:"tag"`
	Kind   MatchKind `json:"kind,omitempty"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
	Text   string    `json:"text"`
	Range  Range     `json:"range"`
}
