package inventory

// KnownItemCount cantidad de entradas de la tabla de vida útil.
func KnownItemCount() int { return len(shelfLifeDays) }
