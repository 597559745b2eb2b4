package ioreport

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fit holds one estimated OLS model.
type Fit struct {
	Name  string
	Terms []string // column names, Terms[0] is the intercept

	Coef  []float64
	SE    []float64
	TStat []float64
	PVal  []float64

	N     int
	K     int
	R2    float64
	AdjR2 float64
	RSS   float64

	residuals []float64
}

// OLS estimates y = X*beta + e by QR least squares and derives the
// classical (homoskedastic) standard errors, t statistics and two-sided
// p values.
func OLS(name string, terms []string, xs *mat.Dense, ys []float64) (*Fit, error) {
	n, k := xs.Dims()
	if n != len(ys) {
		return nil, fmt.Errorf("ioreport: design has %d rows, response has %d", n, len(ys))
	}
	if n <= k {
		return nil, fmt.Errorf(
			"ioreport: model %q needs more than %d observations, got %d",
			name, k, n)
	}

	y := mat.NewDense(n, 1, ys)

	var qr mat.QR
	qr.Factorize(xs)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		return nil, fmt.Errorf("ioreport: model %q is singular: %w", name, err)
	}

	// Residuals and sums of squares.
	var fitted mat.Dense
	fitted.Mul(xs, &beta)

	residuals := make([]float64, n)
	var rss float64
	var ybar float64
	for i := 0; i < n; i++ {
		ybar += ys[i]
	}
	ybar /= float64(n)
	var tss float64
	for i := 0; i < n; i++ {
		e := ys[i] - fitted.At(i, 0)
		residuals[i] = e
		rss += e * e
		d := ys[i] - ybar
		tss += d * d
	}

	dof := float64(n - k)
	sigma2 := rss / dof

	// Covariance of beta: sigma^2 * (X'X)^-1.
	var xtx mat.Dense
	xtx.Mul(xs.T(), xs)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("ioreport: model %q: X'X not invertible: %w", name, err)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}

	fit := &Fit{
		Name:      name,
		Terms:     terms,
		Coef:      make([]float64, k),
		SE:        make([]float64, k),
		TStat:     make([]float64, k),
		PVal:      make([]float64, k),
		N:         n,
		K:         k,
		RSS:       rss,
		residuals: residuals,
	}
	for j := 0; j < k; j++ {
		b := beta.At(j, 0)
		se := math.Sqrt(sigma2 * inv.At(j, j))
		fit.Coef[j] = b
		fit.SE[j] = se
		if se > 0 {
			fit.TStat[j] = b / se
			fit.PVal[j] = 2 * tDist.Survival(math.Abs(fit.TStat[j]))
		} else {
			fit.TStat[j] = math.NaN()
			fit.PVal[j] = math.NaN()
		}
	}

	if tss > 0 {
		fit.R2 = 1 - rss/tss
		fit.AdjR2 = 1 - (1-fit.R2)*float64(n-1)/dof
	}
	return fit, nil
}

// BreuschPagan runs the Breusch-Pagan heteroskedasticity test on a
// fitted model: squared residuals regressed on the original design, LM
// statistic n*R2 against chi-squared with k-1 degrees of freedom.
type BPResult struct {
	LM   float64
	DF   int
	PVal float64
}

func BreuschPagan(fit *Fit, xs *mat.Dense) (*BPResult, error) {
	e2 := make([]float64, len(fit.residuals))
	for i, e := range fit.residuals {
		e2[i] = e * e
	}

	aux, err := OLS(fit.Name+" (aux)", fit.Terms, xs, e2)
	if err != nil {
		return nil, err
	}

	df := fit.K - 1
	lm := float64(fit.N) * aux.R2
	chi := distuv.ChiSquared{K: float64(df)}
	return &BPResult{
		LM:   lm,
		DF:   df,
		PVal: chi.Survival(lm),
	}, nil
}
