// Package main 提供无窗口的拖拽回放工具
//
// 按 YAML 脚本向轮播发送指针事件，逐帧推进时钟与轨道动画，
// 打印每一步之后的状态和吸附决策，用于调整拖拽参数。
//
// Usage:
//
//	go run ./cmd/simulate_drag [flags]
//
// Flags:
//
//	--script <path>  回放脚本（默认 cmd/simulate_drag/testdata/flick.yaml）
//	--verbose        输出轮播内部日志
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

var (
	scriptFlag  = flag.String("script", "cmd/simulate_drag/testdata/flick.yaml", "Pointer replay script (YAML)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	data, err := os.ReadFile(*scriptFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	script, err := ParseScript(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sim, err := NewSimulator(script, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sim.Close()

	sim.Run(script.Steps)

	for _, item := range sim.Activated() {
		fmt.Printf("activated: slide %s -> %s\n", item.ID, item.Link)
	}
}
