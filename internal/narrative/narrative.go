// Package narrative builds the deterministic, templated reading of a
// DISC profile. The sentence templates are authored text and part of
// the product, not UI chrome, so they live here rather than in the
// locale bundle. No external text source feeds this path.
package narrative

import (
	"fmt"

	"github.com/everinsight/discprofile/internal/model"
)

// StrongThreshold is the score at or above which a dimension carries
// an overextension risk. Fixed policy constant out of 25, not derived.
const StrongThreshold = 6

var strengths = map[model.Dimension]string{
	model.DimD: "Vous aimez relever des défis, aller vite et orienter les décisions.",
	model.DimI: "Vous mettez facilement de l’énergie et du lien dans le groupe.",
	model.DimS: "Vous favorisez la coopération, l’écoute et un climat stable.",
	model.DimC: "Vous apportez de la rigueur, de la précision et le sens des normes.",
}

var excesses = map[model.Dimension]string{
	model.DimD: "En excès, vous pouvez aller trop vite, imposer vos vues ou prendre peu de temps pour écouter.",
	model.DimI: "En excès, vous pouvez beaucoup parler, vous disperser ou perdre de vue l’objectif.",
	model.DimS: "En excès, vous pouvez éviter les conflits, trop vous adapter ou avoir du mal à dire non.",
	model.DimC: "En excès, vous pouvez sur-structurer, rechercher trop de détails ou avoir du mal à décider.",
}

var development = map[model.Dimension]string{
	model.DimD: "Gagner à écouter davantage, poser des questions et partager la décision quand c’est utile.",
	model.DimI: "Gagner à structurer vos messages, prioriser et conclure plus clairement.",
	model.DimS: "Gagner à exprimer vos désaccords, poser des limites et oser dire non.",
	model.DimC: "Gagner à simplifier, aller à l’essentiel et accepter une part d’incertitude.",
}

func line(d model.Dimension, texts map[model.Dimension]string) model.NarrativeLine {
	return model.NarrativeLine{Dim: d, Name: model.DimensionName(d), Text: texts[d]}
}

// Build produces the narrative sections for a scored profile:
//
//   - strengths: the two top-ranked dimensions, regardless of score;
//   - excesses: every dimension scoring at or above StrongThreshold;
//   - development: every dimension outside the top two.
//
// Pure and deterministic: identical input yields identical output.
func Build(v model.ScoreVector, ranking model.Ranking) model.NarrativeSections {
	top := ranking.TopTwo()

	var out model.NarrativeSections
	out.Identity = fmt.Sprintf(
		"Vous avez un profil principalement %s (%s), avec une énergie secondaire %s (%s).",
		model.DimensionName(top[0]), top[0], model.DimensionName(top[1]), top[1],
	)

	for _, d := range top {
		out.Strengths = append(out.Strengths, line(d, strengths))
	}

	for _, d := range model.Dimensions {
		if v.Get(d) >= StrongThreshold {
			out.Excesses = append(out.Excesses, line(d, excesses))
		}
	}

	for _, d := range model.Dimensions {
		if d != top[0] && d != top[1] {
			out.Development = append(out.Development, line(d, development))
		}
	}

	return out
}
