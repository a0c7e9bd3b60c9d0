package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/lukaszgryglicki/spheretracer/internal/spheretracer"
)

func main() {
	spheretracer.Debug = os.Getenv("DEBUG") != ""
	spheretracer.PNG = os.Getenv("PNG") != ""
	spheretracer.HUD = os.Getenv("HUD") != ""
	spheretracer.Record = os.Getenv("RECORD")
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if len(os.Args) > 1 && os.Args[1] == "replay" {
		if len(os.Args) < 4 {
			fmt.Printf("Usage: %s replay <bundle-dir> <out.gif>\n", os.Args[0])
			os.Exit(2)
		}
		if err := spheretracer.ExportReplay(os.Args[2], os.Args[3], 0); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := "scenes/default.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	httpAddr, grpcAddr := os.Getenv("SERVE"), os.Getenv("GRPC")
	var err error
	if httpAddr != "" || grpcAddr != "" {
		err = serve(cfg, httpAddr, grpcAddr)
	} else {
		err = spheretracer.Run(cfg)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
