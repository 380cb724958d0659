package main

import (
	"regexp"
	"strconv"
	"strings"
)

// rangeFunction rewrites `NAME(<range>)` into plain arithmetic over the range cells
type rangeFunction struct {
	name    string
	pattern *regexp.Regexp
	expand  func(cellIds []string) string
}

func newRangeFunction(name string, expand func(cellIds []string) string) rangeFunction {
	return rangeFunction{
		name:    name,
		pattern: regexp.MustCompile(name + `\(([A-Z0-9:]+)\)`),
		expand:  expand,
	}
}

// SUM(A1:A3) -> (A1+A2+A3)
var calculateSum = func(cellIds []string) string {
	return "(" + strings.Join(cellIds, "+") + ")"
}

// AVERAGE(A1:A3) -> ((A1+A2+A3)/3); the count is a literal, an empty range divides by zero
var calculateAvg = func(cellIds []string) string {
	return "(" + calculateSum(cellIds) + "/" + strconv.Itoa(len(cellIds)) + ")"
}

var sumFunction = newRangeFunction("SUM", calculateSum)
var avgFunction = newRangeFunction("AVERAGE", calculateAvg)

// expansion order matters: SUM first, then AVERAGE
var rangeFunctions = []rangeFunction{sumFunction, avgFunction}
