/* ndnwire - NDN packet wire encoding library
 *
 * Copyright (C) 2020-2022 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/named-data/ndnwire/core"
	"github.com/named-data/ndnwire/ndn"
	"github.com/named-data/ndnwire/ndn/tlv"
	"github.com/named-data/ndnwire/ndn/util"
	"github.com/named-data/ndnwire/utils/comparison"
)

// Version of ndnwire.
var Version string

// BuildTime contains the timestamp of when this version of ndnwire was built.
var BuildTime string

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  ndnwire [options] build <name-uri> <content>")
	fmt.Println("  ndnwire [options] decode <hex-packet>")
	fmt.Println()
	flag.PrintDefaults()
}

func main() {
	core.Version = Version
	core.BuildTime = BuildTime
	core.StartTimestamp = time.Now()

	var shouldPrintVersion bool
	flag.BoolVar(&shouldPrintVersion, "version", false, "Print version and exit")
	flag.BoolVar(&shouldPrintVersion, "V", false, "Print version and exit (short)")
	var configFile string
	flag.StringVar(&configFile, "config", "", "Configuration file path")
	var shouldValidate bool
	flag.BoolVar(&shouldValidate, "validate", true, "Validate the signature of decoded packets")
	var freshness time.Duration
	flag.DurationVar(&freshness, "freshness", 0, "Freshness period of built packets")
	var mobility bool
	flag.BoolVar(&mobility, "mobility", false, "Set the producer mobility flag on built packets")
	var hopLimit int
	flag.IntVar(&hopLimit, "hop-limit", 0, "Hop limit of built packets (0 for none)")
	flag.Parse()

	if shouldPrintVersion {
		fmt.Println("ndnwire: NDN packet wire encoding library")
		fmt.Println("Version " + core.Version + " (Built " + core.BuildTime + ")")
		fmt.Println("Copyright (C) 2020-2022 Eric Newberry")
		fmt.Println("Released under the terms of the MIT License")
		return
	}

	if configFile != "" {
		core.LoadConfig(configFile)
	}
	core.InitializeLogger()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "build":
		if len(args) != 3 {
			usage()
			os.Exit(1)
		}
		if err := build(args[1], []byte(args[2]), freshness, mobility, hopLimit); err != nil {
			core.LogFatal("Main", "Unable to build packet: "+err.Error())
		}
	case "decode":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		if err := decode(args[1], shouldValidate); err != nil {
			core.LogFatal("Main", "Unable to decode packet: "+err.Error())
		}
	default:
		usage()
		os.Exit(1)
	}
}

func build(nameURI string, content []byte, freshness time.Duration, mobility bool, hopLimit int) error {
	name, err := ndn.NameFromString(nameURI)
	if err != nil {
		return err
	}

	data := ndn.NewData(name, content)
	if freshness > 0 {
		data.SetFreshnessPeriod(freshness)
	}
	data.SetMobilityFlag(mobility)
	data.SetHopLimit(uint8(comparison.Min(hopLimit, 255)))

	wire, err := data.Sign()
	if err != nil {
		return err
	}
	fullName, err := data.FullName()
	if err != nil {
		return err
	}

	core.LogInfo("Main", "Built "+data.String())
	fmt.Println(util.ToHex(wire, true))
	fmt.Println("Full name: " + fullName.String())
	return nil
}

func decode(hexPacket string, shouldValidate bool) error {
	wire, err := util.FromHex(hexPacket)
	if err != nil {
		return err
	}

	block, _, err := tlv.DecodeBlock(wire)
	if err != nil {
		return err
	}
	data, err := ndn.DecodeData(block, shouldValidate)
	if err != nil {
		return err
	}

	fmt.Println(data.String())
	fmt.Println("SignatureInfo: " + data.SignatureInfo().String())
	fmt.Println("SignatureValue: " + util.ToHex(data.SignatureValue(), true))
	if fullName, err := data.FullName(); err == nil {
		fmt.Println("Full name: " + fullName.String())
	}
	if len(data.Content()) > 0 {
		fmt.Println("Content: " + util.ToHex(data.Content(), true))
	}
	return nil
}
