//go:build !mobile

// Package mobile 是 ebitenmobile 的绑定入口，真正的初始化只在 -tags mobile 时编译。
//
// 桌面构建下 ./... 仍会扫描到此目录，这里只保留导出符号，让包保持可编译、
// 可被 gomobile 识别，不引入 ebiten/mobile 依赖。
package mobile

// Dummy 桌面端占位，与 mobile.go 中的同名函数互斥
func Dummy() {}
