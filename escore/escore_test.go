package escore

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/YangZhang-YZU/Goose-Plumage-Growth/sumstats"
)

func mkTrait(name string, meanChi float64, p map[string]float64) *sumstats.Trait {
	return &sumstats.Trait{
		Name:            name,
		P:               p,
		MeanChiSquare:   meanChi,
		WeightNumerator: math.Max(0, meanChi-1),
	}
}

func TestWeightsNormalize(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("static", 3.0, nil),
		mkTrait("dynamic", 1.5, nil),
	}

	weights, err := Weights(traits)
	if err != nil {
		t.Fatal(err)
	}

	if w := weights["static"]; math.Abs(w-0.8) > 1e-12 {
		t.Errorf("weight(static) = %v, want 0.8", w)
	}
	if w := weights["dynamic"]; math.Abs(w-0.2) > 1e-12 {
		t.Errorf("weight(dynamic) = %v, want 0.2", w)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("a", 1.1, nil),
		mkTrait("b", 2.7, nil),
		mkTrait("c", 1.003, nil),
		mkTrait("d", 14.25, nil),
	}

	weights, err := Weights(traits)
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	for _, w := range weights {
		if w < 0 || w > 1 {
			t.Errorf("weight %v outside [0, 1]", w)
		}
		sum += w
	}

	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum to %.15f, want 1", sum)
	}
}

func TestWeightsDegenerate(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("quiet1", 0.9, nil),
		mkTrait("quiet2", 1.0, nil),
	}

	_, err := Weights(traits)

	var degenerate *DegenerateWeightsError
	if !errors.As(err, &degenerate) {
		t.Fatalf("err = %v, want a *DegenerateWeightsError", err)
	}
	if !reflect.DeepEqual(degenerate.Traits, []string{"quiet1", "quiet2"}) {
		t.Errorf("Traits = %v, want both trait names", degenerate.Traits)
	}
}

func TestWeightsDuplicateName(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("same", 2.0, nil),
		mkTrait("same", 3.0, nil),
	}

	if _, err := Weights(traits); err == nil {
		t.Error("Weights returned nil error for duplicate trait names")
	}
}

func TestCommonVariants(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("a", 2, map[string]float64{"rs1": 0.1, "rs2": 0.2, "rs3": 0.3, "rs9": 0.4}),
		mkTrait("b", 2, map[string]float64{"rs2": 0.1, "rs3": 0.2, "rs8": 0.3}),
		mkTrait("c", 2, map[string]float64{"rs3": 0.1, "rs2": 0.2, "rs7": 0.3}),
	}

	got := CommonVariants(traits)
	want := []string{"rs2", "rs3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CommonVariants = %v, want %v", got, want)
	}
}

func TestCommonVariantsEmptyIntersection(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("a", 2, map[string]float64{"rs1": 0.1}),
		mkTrait("b", 2, map[string]float64{"rs2": 0.1}),
	}

	if got := CommonVariants(traits); len(got) != 0 {
		t.Errorf("CommonVariants = %v, want empty", got)
	}
}

// Two traits over the same three variants, hand-checked end to end:
// weight(static) = 2.0/2.5 = 0.8, weight(dynamic) = 0.5/2.5 = 0.2.
func TestScoresWorkedExample(t *testing.T) {
	static := mkTrait("static", 3.0, map[string]float64{"rs1": 0.01, "rs2": 0.5, "rs3": 0.001})
	dynamic := mkTrait("dynamic", 1.5, map[string]float64{"rs1": 0.2, "rs2": 0.0001, "rs3": 0.3})
	traits := []*sumstats.Trait{static, dynamic}

	weights, err := Weights(traits)
	if err != nil {
		t.Fatal(err)
	}

	results := Scores(traits, weights, CommonVariants(traits))

	want := []Result{
		{SNP: "rs3", Score: 0.8*3 + 0.2*-math.Log10(0.3)},
		{SNP: "rs1", Score: 0.8*2 + 0.2*-math.Log10(0.2)},
		{SNP: "rs2", Score: 0.8*-math.Log10(0.5) + 0.2*4},
	}

	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i].SNP != want[i].SNP {
			t.Errorf("results[%d].SNP = %q, want %q", i, results[i].SNP, want[i].SNP)
		}
		if math.Abs(results[i].Score-want[i].Score) > 1e-9 {
			t.Errorf("score(%s) = %.12f, want %.12f", want[i].SNP, results[i].Score, want[i].Score)
		}
	}
}

func TestScoresPValueOfOneContributesNothing(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("only", 2.0, map[string]float64{"rs1": 1.0}),
	}

	weights, err := Weights(traits)
	if err != nil {
		t.Fatal(err)
	}

	results := Scores(traits, weights, CommonVariants(traits))
	if len(results) != 1 || results[0].Score != 0 {
		t.Errorf("results = %v, want a single zero score", results)
	}
}

func TestScoresFloorCapsContribution(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("only", 2.0, map[string]float64{"tiny": 1e-310, "floor": PFloor}),
	}

	weights, err := Weights(traits)
	if err != nil {
		t.Fatal(err)
	}

	results := Scores(traits, weights, CommonVariants(traits))

	most := -math.Log10(PFloor)
	for _, r := range results {
		if r.Score != most {
			t.Errorf("score(%s) = %v, want the floor cap %v", r.SNP, r.Score, most)
		}
	}
}

// With a single trait (weight 1), a larger P value must score strictly lower.
func TestScoresMonotoneInP(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("only", 2.0, map[string]float64{
			"rs1": 0.001, "rs2": 0.01, "rs3": 0.1, "rs4": 0.5, "rs5": 1.0,
		}),
	}

	weights, err := Weights(traits)
	if err != nil {
		t.Fatal(err)
	}

	results := Scores(traits, weights, CommonVariants(traits))
	for i := 1; i < len(results); i++ {
		if results[i].Score >= results[i-1].Score {
			t.Errorf("results[%d] = %+v not strictly below results[%d] = %+v",
				i, results[i], i-1, results[i-1])
		}
	}
}

func TestScoresTieBreakBySNP(t *testing.T) {
	traits := []*sumstats.Trait{
		mkTrait("only", 2.0, map[string]float64{"zzz": 0.25, "aaa": 0.25, "mmm": 0.25}),
	}

	weights, err := Weights(traits)
	if err != nil {
		t.Fatal(err)
	}

	results := Scores(traits, weights, CommonVariants(traits))

	var order []string
	for _, r := range results {
		order = append(order, r.SNP)
	}
	if !reflect.DeepEqual(order, []string{"aaa", "mmm", "zzz"}) {
		t.Errorf("tie order = %v, want ascending variant identifiers", order)
	}
}

func TestWriteTSV(t *testing.T) {
	results := []Result{
		{SNP: "rs3", Score: 2.5045757490560675},
		{SNP: "rs1", Score: 1.7397940008672037},
		{SNP: "rs2", Score: 1.040823996531185},
	}

	var b strings.Builder
	if err := WriteTSV(&b, "SNP", results); err != nil {
		t.Fatal(err)
	}

	want := "SNP\tE_score\n" +
		"rs3\t2.504576\n" +
		"rs1\t1.739794\n" +
		"rs2\t1.040824\n"
	if b.String() != want {
		t.Errorf("output = %q, want %q", b.String(), want)
	}
}

func TestWriteTSVEmptyResults(t *testing.T) {
	var b strings.Builder
	if err := WriteTSV(&b, "MarkerName", nil); err != nil {
		t.Fatal(err)
	}

	if want := "MarkerName\tE_score\n"; b.String() != want {
		t.Errorf("output = %q, want %q", b.String(), want)
	}
}
