package scenes

import (
	"github.com/gonewx/daffodil/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 编译期检查
var (
	_ Scene          = (*FlowerScene)(nil)
	_ game.Startable = (*FlowerScene)(nil)
)
