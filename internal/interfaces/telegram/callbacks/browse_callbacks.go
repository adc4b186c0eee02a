// Package callbacks 内联键盘回调数据的编码与解析
package callbacks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/easayliu/movie-browser/internal/interfaces/telegram/types"
)

// Action 回调动作
type Action string

const (
	ActionMovie      Action = "mv"
	ActionView       Action = "view"
	ActionTimeWindow Action = "tw"
	ActionSort       Action = "sort"
	ActionGenre      Action = "genre"
	ActionGenres     Action = "genres"
	ActionList       Action = "list"
	ActionMore       Action = "more"
	ActionBack       Action = "back"
	ActionHome       Action = "home"
	ActionTheme      Action = "theme"
	ActionRetry      Action = "retry"
	ActionDismiss    Action = "dismiss"
)

const separator = ":"

// valued 需要携带参数的动作
var valued = map[Action]bool{
	ActionMovie:      true,
	ActionView:       true,
	ActionTimeWindow: true,
	ActionSort:       true,
	ActionGenre:      true,
}

var plain = map[Action]bool{
	ActionGenres:  true,
	ActionList:    true,
	ActionMore:    true,
	ActionBack:    true,
	ActionHome:    true,
	ActionTheme:   true,
	ActionRetry:   true,
	ActionDismiss: true,
}

// Callback 解析后的回调
type Callback struct {
	Action Action
	Value  string
}

// ID 将参数解析为正整数ID
func (c Callback) ID() (int, error) {
	id, err := strconv.Atoi(c.Value)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", types.ErrInvalidCallback, c.Value)
	}
	return id, nil
}

// Data 生成回调数据
func Data(action Action, value ...string) string {
	if len(value) == 0 || value[0] == "" {
		return string(action)
	}
	return string(action) + separator + value[0]
}

// MovieData 查看电影详情
func MovieData(id int) string {
	return Data(ActionMovie, strconv.Itoa(id))
}

// GenreData 切换类型
func GenreData(id int) string {
	return Data(ActionGenre, strconv.Itoa(id))
}

// Parse 解析回调数据
func Parse(data string) (Callback, error) {
	name, value, _ := strings.Cut(strings.TrimSpace(data), separator)
	action := Action(name)

	switch {
	case valued[action]:
		if value == "" {
			return Callback{}, fmt.Errorf("%w: %q needs a value", types.ErrInvalidCallback, data)
		}
	case plain[action]:
		if value != "" {
			return Callback{}, fmt.Errorf("%w: %q takes no value", types.ErrInvalidCallback, data)
		}
	default:
		return Callback{}, fmt.Errorf("%w: %q", types.ErrInvalidCallback, data)
	}

	return Callback{Action: action, Value: value}, nil
}
