// ABOUTME: Tetravalent construct: four chain segments in heavy, heavy, light, light order
// ABOUTME: One construct for the target sequence and one for the template sequence
package models

import "strings"

// ConstructSeparator joins the chain segments of a construct
const ConstructSeparator = "/"

// TetravalentConstruct is a separator-joined four segment sequence
type TetravalentConstruct string

// NewTetravalentConstruct duplicates heavy and light into the symmetric construct
func NewTetravalentConstruct(heavy, light string) TetravalentConstruct {
	return TetravalentConstruct(strings.Join([]string{heavy, heavy, light, light}, ConstructSeparator))
}

// Segments splits the construct back into its chain segments
func (c TetravalentConstruct) Segments() []string {
	return strings.Split(string(c), ConstructSeparator)
}

func (c TetravalentConstruct) String() string {
	return string(c)
}

// ConstructPair carries the target construct and its template counterpart
type ConstructPair struct {
	Target TetravalentConstruct `json:"target"`
	Model  TetravalentConstruct `json:"model"`
}
