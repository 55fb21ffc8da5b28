// Command pslrtether-demo is a non-interactive tether session: connect,
// print status, fire the shutter, and pull the resulting image down to
// disk. It does not set ISO or run autofocus.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/theckman/yacspin"

	"github.com/bdube/pslrtether/capability"
	yml "github.com/go-yaml/yaml"

	"github.com/bdube/pslrtether/config"
	"github.com/bdube/pslrtether/internal/mathx"
	"github.com/bdube/pslrtether/scsi"
	"github.com/bdube/pslrtether/session"
)

// Version is the build version, typically injected via ldflags.
var Version = "dev"

// ConfigFileName is the default config file looked up in the working
// directory.
const ConfigFileName = "pslrtether.yml"

var (
	devicePath = "/dev/sg0"
	outputPath = "shot.jpg"
)

func root() {
	str := `pslrtether-demo drives a tethered Pentax DSLR over its SCSI command set:
connect, report status, fire the shutter, and save the resulting image.

Usage:
	pslrtether-demo <command> [device-path]

Commands:
	run      connect and run one shutter/download cycle
	mkconf   write the default config file
	conf     print the active config
	help     print usage notes
	version`
	fmt.Println(str)
}

func help() {
	str := `pslrtether-demo reads pslrtether.yml from the working directory if present;
otherwise it uses built-in defaults (auto-reconnect on, 60s reconnect window,
0.5s status cache freshness). Run "mkconf" to write out the defaults so you
can edit them.`
	fmt.Println(str)
}

func mkconf() {
	if err := config.WriteDefaults(ConfigFileName); err != nil {
		log.Fatalf("writing config: %v", err)
	}
}

func printConf() {
	opts, err := config.Load(ConfigFileName)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := yml.NewEncoder(os.Stdout).Encode(opts); err != nil {
		log.Fatalf("encoding config: %v", err)
	}
}

func pversion() {
	fmt.Printf("pslrtether-demo version %v\n", Version)
}

func run() {
	opts, err := config.Load(ConfigFileName)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	transport := scsi.NewPlatformTransport()
	ctrl := session.New(transport, opts, log.Default())

	stopWatch, err := config.Watch(ConfigFileName, ctrl.SetOptions)
	if err != nil {
		log.Fatalf("watching config: %v", err)
	}
	defer stopWatch()

	color.Cyan("connecting to %s ...", devicePath)
	if err := ctrl.Connect(devicePath, 10*time.Second); err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer ctrl.Disconnect()

	name, _ := ctrl.GetCameraName()
	color.Green("connected to %s", name)

	reportStatus(ctrl)

	idx := ctrl.ExecuteShutter()
	if idx == session.InvalidBufferIndex {
		color.Red("shutter release did not resolve to a buffer")
		return
	}
	color.Green("shot landed in buffer %d", idx)

	downloadImage(ctrl, idx)
}

func reportStatus(ctrl *session.Controller) {
	steps := ctrl.GetISOSteps()
	fmt.Printf("valid ISO steps: %v\n", steps)

	limits, ok := ctrl.GetApertureLimits()
	if ok {
		fmt.Printf("aperture range: f/%.1f - f/%.1f\n", limits.Min, limits.Max)
	}

	if volts, ok := ctrl.GetBatteryVoltages(); ok {
		rounded := make([]float64, len(volts))
		for i, v := range volts {
			rounded[i] = mathx.Round(v, 0.1)
		}
		fmt.Printf("battery: %v V\n", rounded)
	}

	if fw, err := ctrl.GetFirmware(); err == nil {
		fmt.Printf("firmware: %s\n", fw)
	}
	if lens, ok := ctrl.GetLensType(); ok {
		fmt.Printf("lens: %s\n", lens)
	}
}

func downloadImage(ctrl *session.Controller, bufferIndex int) {
	cfg := yacspin.Config{
		Frequency:     100 * time.Millisecond,
		CharSet:       yacspin.CharSets[9],
		Suffix:        " downloading image",
		Message:       "0%",
		StopCharacter: "✓",
		StopColors:    []string{"fgGreen"},
	}
	spinner, err := yacspin.New(cfg)
	if err != nil {
		log.Fatalf("spinner: %v", err)
	}
	spinner.Start()

	data, err := ctrl.GetImage(bufferIndex, capability.ImageFormatJPEG, 0, 0, func(fraction float64) {
		spinner.Message(fmt.Sprintf("%.0f%%", fraction*100))
	})
	if err != nil {
		spinner.StopFailMessage(err.Error())
		spinner.StopFail()
		log.Fatalf("download: %v", err)
	}
	spinner.StopMessage(fmt.Sprintf("%d bytes", len(data)))
	spinner.Stop()

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		log.Fatalf("writing %s: %v", outputPath, err)
	}
	color.Green("saved %s", outputPath)
}

func main() {
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}

	cmd := strings.ToLower(args[1])
	if len(args) > 2 {
		devicePath = args[2]
	}

	switch cmd {
	case "help":
		help()
	case "mkconf":
		mkconf()
	case "conf":
		printConf()
	case "run":
		run()
	case "version":
		pversion()
	default:
		log.Fatalf("unknown command %q", cmd)
	}
}
