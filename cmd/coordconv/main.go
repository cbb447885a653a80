package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	coord "github.com/jean-knapp/coordinate-api"
)

func main() {
	from := flag.String("from", "dd", "input format: dd, dmm, dms, utm or mgrs")
	precision := flag.Int("precision", 5, "MGRS output precision, 1..5 digits")
	model := flag.String("model", "wgs84", "earth model for -dist/-bearing: sphere or wgs84")
	dist := flag.Bool("dist", false, "treat the two arguments as a pair and print distance and bearing")
	flag.Parse()

	if *dist {
		if flag.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "-dist needs exactly two coordinate arguments")
			os.Exit(1)
		}
		if err := printGeodesic(*from, *model, flag.Arg(0), flag.Arg(1)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: coordconv [-from fmt] [-precision n] <coordinate>")
		fmt.Fprintln(os.Stderr, "       coordconv -dist [-from fmt] [-model m] <coordinate> <coordinate>")
		os.Exit(1)
	}

	if err := printConversions(*from, *precision, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseAs(format, text string) (coord.Coordinate, error) {
	var rep coord.Representation
	var err error

	switch strings.ToLower(format) {
	case "dd":
		rep, err = coord.ParseDD(text)
	case "dmm":
		rep, err = coord.ParseDMM(text)
	case "dms":
		rep, err = coord.ParseDMS(text)
	case "utm":
		rep, err = coord.ParseUTM(text)
	case "mgrs":
		rep, err = coord.ParseMGRS(text)
	default:
		return coord.Coordinate{}, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return coord.Coordinate{}, err
	}
	return rep.Coordinate()
}

func printConversions(format string, precision int, text string) error {
	c, err := parseAs(format, text)
	if err != nil {
		return err
	}

	fmt.Printf("dd:   %s\n", c)
	fmt.Printf("dmm:  %s\n", coord.DMMFromCoordinate(c))
	fmt.Printf("dms:  %s\n", coord.DMSFromCoordinate(c))

	u, err := coord.UTMFromCoordinate(c)
	if err != nil {
		fmt.Printf("utm:  %s\n", err)
	} else {
		fmt.Printf("utm:  %s\n", u)
	}

	m, err := coord.MGRSFromCoordinate(c, precision)
	if err != nil {
		fmt.Printf("mgrs: %s\n", err)
	} else {
		fmt.Printf("mgrs: %s\n", m)
	}
	return nil
}

func printGeodesic(format, modelName, aText, bText string) error {
	var model coord.EarthModel
	switch strings.ToLower(modelName) {
	case "sphere":
		model = coord.Sphere
	case "wgs84":
		model = coord.WGS84
	default:
		return fmt.Errorf("unknown earth model %q", modelName)
	}

	a, err := parseAs(format, aText)
	if err != nil {
		return err
	}
	b, err := parseAs(format, bText)
	if err != nil {
		return err
	}

	d, err := coord.Distance(a, b, model)
	if err != nil {
		return err
	}
	brg, err := coord.Bearing(a, b, model)
	if err != nil {
		return err
	}

	fmt.Printf("distance: %.1f m (%s)\n", d, model)
	fmt.Printf("bearing:  %.2f°\n", brg)
	return nil
}
