package location

import (
	// 外部依赖
	"strconv"
	"strings"

	// 内部引用
	code "github.com/coldstack/samplestore/pkg/common/code"
)

// 坐标文法：<行字母><列数字>，行 A=0（Z 之后 AA=26），列从 1 起印。
// "A5" ⇒ 行 0、列下标 4。

// ParseCoordinate 解析坐标串，返回 0 起的行列下标
func ParseCoordinate(s string) (row int, col int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, 0, code.BadCoordinate.WithMsg("empty coordinate")
	}

	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return 0, 0, code.BadCoordinate.WithMsgf("coordinate %q must be row letters followed by a column number", s)
	}

	row = 0
	for _, ch := range s[:i] {
		row = row*26 + int(ch-'A'+1)
	}
	row--

	n, convErr := strconv.Atoi(s[i:])
	if convErr != nil || n < 1 {
		return 0, 0, code.BadCoordinate.WithMsgf("coordinate %q has an invalid column number", s)
	}
	return row, n - 1, nil
}

// FormatCoordinate 由 0 起的行列下标生成坐标串
func FormatCoordinate(row int, col int) string {
	var b strings.Builder
	r := row + 1
	for r > 0 {
		r--
		b.WriteByte(byte('A' + r%26))
		r /= 26
	}
	letters := []byte(b.String())
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters) + strconv.Itoa(col+1)
}

// NormalizeCoordinate 校验坐标落在 rows×cols 网格内并返回规范大写形式
func NormalizeCoordinate(s string, rows int, cols int) (string, error) {
	row, col, err := ParseCoordinate(s)
	if err != nil {
		return "", err
	}
	if row >= rows || col >= cols {
		return "", code.BadCoordinate.WithMsgf("coordinate %q outside rack bounds %dx%d",
			strings.ToUpper(strings.TrimSpace(s)), rows, cols)
	}
	return FormatCoordinate(row, col), nil
}
