// Package config 站点配置信息
package config

// Initialize 触发本目录下所有配置文件的 init() 注册。
// main.go 在解析 --env 之前调用
func Initialize() {
	// 空函数，各配置项通过各文件的 init() 注册
}
