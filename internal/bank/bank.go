// Package bank holds the fixed, authored DISC item bank: 25
// forced-choice situations, each offering one option per dimension.
// The bank is the canonical source of truth for question order and
// for the option-to-dimension mapping.
package bank

import (
	"fmt"

	"github.com/everinsight/discprofile/internal/model"
)

// Size is the number of items in the bank, which is also the maximum
// score any single dimension can reach.
const Size = 25

var items = []model.Item{
	{ID: 1, Stem: "Mon collègue me présente un compte-rendu de notre dernier projet", Options: []model.Option{
		{Label: "Je suis à son écoute, attentif", Dim: model.DimS},
		{Label: "Je lui fais comprendre que la décision finale m’appartient", Dim: model.DimD},
		{Label: "Je m’attache aux détails de son exposé", Dim: model.DimC},
		{Label: "Je le coupe souvent avec des anecdotes", Dim: model.DimI},
	}},
	{ID: 2, Stem: "Dans la vie de tous les jours", Options: []model.Option{
		{Label: "J’aime relever des défis, il me faut de l’action", Dim: model.DimD},
		{Label: "Avec moi les gens ne s’ennuient jamais, j’aime divertir les autres", Dim: model.DimI},
		{Label: "Je suis plutôt compréhensif, je n’aime pas blesser les autres", Dim: model.DimS},
		{Label: "Je suis prudent, je ne donne pas ma confiance facilement", Dim: model.DimC},
	}},
	{ID: 3, Stem: "Dans une réunion", Options: []model.Option{
		{Label: "Je suis à l’écoute des avis de chacun afin d’éviter les conflits", Dim: model.DimS},
		{Label: "Je suis coopératif, tant que tout le monde se conforme aux règles", Dim: model.DimC},
		{Label: "Mon avis est primordial, je ne lâche pas de terrain", Dim: model.DimD},
		{Label: "Je séduis les autres pour les convaincre de me suivre", Dim: model.DimI},
	}},
	{ID: 4, Stem: "Lors de la signature d’un contrat", Options: []model.Option{
		{Label: "Je m’entoure de précautions et vérifie scrupuleusement tous les termes", Dim: model.DimC},
		{Label: "Je suis ferme et déterminé sur les clauses de l’accord", Dim: model.DimD},
		{Label: "J’influence mon interlocuteur pour le convaincre de faire un geste supplémentaire", Dim: model.DimI},
		{Label: "Je m’arrange pour que tout le monde soit satisfait quitte à faire une concession", Dim: model.DimS},
	}},
	{ID: 5, Stem: "Avec mes supérieurs", Options: []model.Option{
		{Label: "Je suis facile à guider, j’obéis aux règles", Dim: model.DimC},
		{Label: "Je fais preuve d’audace", Dim: model.DimD},
		{Label: "Ils savent qu’ils peuvent vraiment compter sur moi", Dim: model.DimS},
		{Label: "Je suis aimable, je fais tout pour les charmer", Dim: model.DimI},
	}},
	{ID: 6, Stem: "Dans un travail de groupe", Options: []model.Option{
		{Label: "Je suis plein de bonne volonté, la cohésion du groupe est importante", Dim: model.DimS},
		{Label: "J’ai la tête sur les épaules et j’impose mon point de vue", Dim: model.DimD},
		{Label: "Je me conforme aux règles et vérifie que toutes les normes sont respectées", Dim: model.DimC},
		{Label: "Je m’attache à ce que tout se passe dans la bonne humeur", Dim: model.DimI},
	}},
	{ID: 7, Stem: "Si je devais classer mes qualités, ce serait :", Options: []model.Option{
		{Label: "La fiabilité, je suis méticuleux et ponctuel", Dim: model.DimC},
		{Label: "La détermination, je dois atteindre mes objectifs", Dim: model.DimD},
		{Label: "L’altruisme, j’aime rendre service", Dim: model.DimS},
		{Label: "La sociabilité, j’ai le contact facile", Dim: model.DimI},
	}},
	{ID: 8, Stem: "Dans les conversations, ce qui me caractérise le plus :", Options: []model.Option{
		{Label: "J’aime quand les gens sont précis", Dim: model.DimC},
		{Label: "J’aime la convivialité, discuter de choses concrètes sans trop se prendre au sérieux", Dim: model.DimI},
		{Label: "J’écoute plus que je ne parle", Dim: model.DimS},
		{Label: "Je parle plus que je n’écoute", Dim: model.DimD},
	}},
	{ID: 9, Stem: "Je suis une personne :", Options: []model.Option{
		{Label: "D’humeur égale, calme, difficilement irritable", Dim: model.DimS},
		{Label: "Joviale qui aime plaisanter", Dim: model.DimI},
		{Label: "Précise et exacte", Dim: model.DimC},
		{Label: "Fonceuse, audacieuse, qui déborde d’énergie", Dim: model.DimD},
	}},
	{ID: 10, Stem: "J’aime les gens :", Options: []model.Option{
		{Label: "Disciplinés, qui savent se dominer", Dim: model.DimC},
		{Label: "Généreux, qui désirent partager", Dim: model.DimI},
		{Label: "Animés et sociables, qui s’expriment par gestes", Dim: model.DimD},
		{Label: "Persévérants, qui n’abandonnent pas et vont jusqu’au bout", Dim: model.DimS},
	}},
	{ID: 11, Stem: "Ce qui me caractérise le plus :", Options: []model.Option{
		{Label: "J’ai l’esprit de compétition, je suis un battant", Dim: model.DimD},
		{Label: "Je suis expansif, sociable, j’ai confiance en moi", Dim: model.DimI},
		{Label: "Je suis attentionné et prévenant", Dim: model.DimS},
		{Label: "J’ai le goût de la perfection", Dim: model.DimC},
	}},
	{ID: 12, Stem: "Ce qui me reflète le mieux :", Options: []model.Option{
		{Label: "J’aime les compliments, les éloges", Dim: model.DimI},
		{Label: "Je suis bienveillant, prêt à donner ou à aider", Dim: model.DimS},
		{Label: "Je suis formel et garde mes distances", Dim: model.DimC},
		{Label: "J’ai de la force de caractère", Dim: model.DimD},
	}},
	{ID: 13, Stem: "Les qualités que j’aime :", Options: []model.Option{
		{Label: "L’empathie, comprendre les sentiments de l’autre", Dim: model.DimS},
		{Label: "La précision et la perfection", Dim: model.DimC},
		{Label: "La détermination et la force", Dim: model.DimD},
		{Label: "Le sens de l’humour, une certaine philosophie de la vie", Dim: model.DimI},
	}},
	{ID: 14, Stem: "Parmi les métiers proposés, je choisirais celui de :", Options: []model.Option{
		{Label: "Infirmier, pour son dévouement aux autres", Dim: model.DimS},
		{Label: "Entrepreneur, pour son sens du challenge", Dim: model.DimD},
		{Label: "Comptable ou juriste, pour sa précision", Dim: model.DimC},
		{Label: "Journaliste ou écrivain, pour son côté investigateur", Dim: model.DimI},
	}},
	{ID: 15, Stem: "En règle générale, je suis plutôt :", Options: []model.Option{
		{Label: "Respectueux des règles", Dim: model.DimC},
		{Label: "Entreprenant et aventurier", Dim: model.DimD},
		{Label: "Optimiste et positif", Dim: model.DimI},
		{Label: "Prêt à aider les autres et arrangeant", Dim: model.DimS},
	}},
	{ID: 16, Stem: "Les qualités qui me caractérisent le plus :", Options: []model.Option{
		{Label: "Je suis courageux et fais preuve de bravoure", Dim: model.DimD},
		{Label: "Je sais stimuler les autres et les inspirer", Dim: model.DimI},
		{Label: "Je me conforme aux règles et aux lois", Dim: model.DimC},
		{Label: "Je suis paisible, j’aime le calme", Dim: model.DimS},
	}},
	{ID: 17, Stem: "Pour résoudre un problème avec mon équipe :", Options: []model.Option{
		{Label: "Je m’adapte et fais preuve de flexibilité", Dim: model.DimS},
		{Label: "J’aime la confrontation, je sais ce qu’il faut faire", Dim: model.DimD},
		{Label: "Je suis décontracté, j’adore convaincre", Dim: model.DimI},
		{Label: "Je leur rappelle les règles à respecter pour surmonter la crise", Dim: model.DimC},
	}},
	{ID: 18, Stem: "C’est dimanche, j’ai prévu :", Options: []model.Option{
		{Label: "D’organiser une petite fête avec les amis et voisins", Dim: model.DimI},
		{Label: "De faire ce que j’aime sans m’occuper des autres", Dim: model.DimD},
		{Label: "De m’occuper de ceux qui ont besoin d’aide", Dim: model.DimS},
		{Label: "De mettre de l’ordre dans mes papiers afin d’avoir l’esprit libre", Dim: model.DimC},
	}},
	{ID: 19, Stem: "Le plus souvent, vous êtes :", Options: []model.Option{
		{Label: "Content de vous et satisfait de vos actions", Dim: model.DimI},
		{Label: "Confiant, vous avez foi dans les autres", Dim: model.DimS},
		{Label: "Attentif au travail bien fait", Dim: model.DimC},
		{Label: "Affirmatif, vous n’admettez pas le doute", Dim: model.DimD},
	}},
	{ID: 20, Stem: "Face à une nouvelle situation, vous êtes :", Options: []model.Option{
		{Label: "Aventureux, vous aimez relever les défis", Dim: model.DimD},
		{Label: "Ouvert aux suggestions, réceptif aux idées des autres", Dim: model.DimI},
		{Label: "Chaleureux, vous allez connaître de nouvelles personnes", Dim: model.DimS},
		{Label: "Modéré, vous évitez les extrêmes et respectez les conventions", Dim: model.DimC},
	}},
	{ID: 21, Stem: "Ce que les autres apprécient chez vous :", Options: []model.Option{
		{Label: "Votre calme et votre patience", Dim: model.DimS},
		{Label: "Votre goût du détail, vous êtes bien documenté", Dim: model.DimC},
		{Label: "Votre vigueur, vous êtes énergique", Dim: model.DimD},
		{Label: "Votre convivialité, vous aimez la compagnie", Dim: model.DimI},
	}},
	{ID: 22, Stem: "Dans les conversations, vous êtes plutôt :", Options: []model.Option{
		{Label: "Loquace, vous aimez parler de sujets variés", Dim: model.DimI},
		{Label: "À l’écoute, vous savez vous contrôler", Dim: model.DimS},
		{Label: "À l’écoute, chaque mot a son importance", Dim: model.DimC},
		{Label: "Loquace, vous aimez diriger la conversation", Dim: model.DimD},
	}},
	{ID: 23, Stem: "Dans la vie, il faut se lever le matin, pour :", Options: []model.Option{
		{Label: "Rechercher l’excellence… Faire mieux qu’hier !", Dim: model.DimC},
		{Label: "Créer de nouveaux contacts… Agrandir son cercle de relations", Dim: model.DimI},
		{Label: "Vivre un nouveau défi… Chaque jour est un nouveau challenge", Dim: model.DimD},
		{Label: "Travailler en équipe… Avancer ensemble et en paix", Dim: model.DimS},
	}},
	{ID: 24, Stem: "Pour réussir, il faut savoir :", Options: []model.Option{
		{Label: "Être diplomate et avoir du tact", Dim: model.DimS},
		{Label: "Prendre des risques et être intrépide", Dim: model.DimD},
		{Label: "Être beau parleur et brillant en société", Dim: model.DimI},
		{Label: "Être réfléchi et analytique", Dim: model.DimC},
	}},
	{ID: 25, Stem: "On vous qualifie le plus souvent de :", Options: []model.Option{
		{Label: "Hyperactif, vous ne tenez pas en place", Dim: model.DimD},
		{Label: "Populaire, vous êtes apprécié par la plupart", Dim: model.DimI},
		{Label: "Amical, vous êtes à l’écoute des autres", Dim: model.DimS},
		{Label: "Ordonné, vous êtes soigneux et organisé", Dim: model.DimC},
	}},
}

// Items returns a copy of the ordered item bank.
func Items() []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	return out
}

// ItemByID returns the item with the given ID, or false.
func ItemByID(id int) (model.Item, bool) {
	if id < 1 || id > len(items) {
		return model.Item{}, false
	}
	return items[id-1], true
}

// Validate checks the authoring invariants: 25 items with IDs 1..25
// in order, four options per item each tagged with a distinct
// dimension, and a balanced distribution of dimensions across the
// whole bank (each appears exactly Size times).
func Validate() error {
	if len(items) != Size {
		return fmt.Errorf("item bank: expected %d items, found %d", Size, len(items))
	}

	perDim := map[model.Dimension]int{}
	for i, it := range items {
		if it.ID != i+1 {
			return fmt.Errorf("item bank: item at position %d has id %d", i, it.ID)
		}
		if len(it.Options) != 4 {
			return fmt.Errorf("item %d: expected 4 options, found %d", it.ID, len(it.Options))
		}
		seen := map[model.Dimension]bool{}
		for _, opt := range it.Options {
			switch opt.Dim {
			case model.DimD, model.DimI, model.DimS, model.DimC:
			default:
				return fmt.Errorf("item %d: unknown dimension %q", it.ID, opt.Dim)
			}
			if seen[opt.Dim] {
				return fmt.Errorf("item %d: dimension %s appears twice", it.ID, opt.Dim)
			}
			seen[opt.Dim] = true
			perDim[opt.Dim]++
		}
	}

	for _, d := range model.Dimensions {
		if perDim[d] != Size {
			return fmt.Errorf("item bank: dimension %s appears %d times, expected %d", d, perDim[d], Size)
		}
	}
	return nil
}
