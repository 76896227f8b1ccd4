package cart

import "errors"

var (
	// ErrProductNotFound : l'id catalogue fourni ne correspond à aucun produit.
	ErrProductNotFound = errors.New("produit introuvable")

	// ErrCartNotFound : update/remove sur un utilisateur sans panier.
	// La lecture, elle, renvoie simplement un panier vide.
	ErrCartNotFound = errors.New("panier introuvable")

	// ErrLineNotFound : aucune stratégie de résolution n'a trouvé de ligne.
	ErrLineNotFound = errors.New("ligne de panier introuvable")

	// ErrConflict : écriture concurrente détectée, l'opération est à rejouer.
	ErrConflict = errors.New("conflit d'écriture sur le panier")
)
