package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tuankiet247/OpenDayGame/internal/config"
	"github.com/tuankiet247/OpenDayGame/internal/db"
	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/repository"
)

// bankcheck valida el banco de preguntas y lista cuantas hay por categoria.
// Uso: bankcheck [ruta.json]. Sin argumento usa DATABASE_URL o QUESTION_BANK_PATH.
func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var src repository.QuestionSource = repository.NewJSONFileSource(cfg.QuestionBankPath)
	switch {
	case len(os.Args) > 1:
		src = repository.NewJSONFileSource(os.Args[1])
	case cfg.DatabaseURL != "":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db pool: %v", err)
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			log.Fatalf("db ping: %v", err)
		}
		src = repository.NewPgQuestionSource(pool)
	}

	bank, err := repository.LoadQuestionBank(ctx, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s: %v\n", src.Name(), err)
		os.Exit(1)
	}

	if ok := report(os.Stdout, src.Name(), bank, domain.DefaultCategories()); !ok {
		os.Exit(1)
	}
}

// report imprime el conteo por categoria. Devuelve false si alguna categoria del
// catalogo no tiene preguntas o si el banco trae categorias desconocidas.
func report(w io.Writer, source string, bank *repository.QuestionBank, catalog []domain.Category) bool {
	ok := true
	fmt.Fprintf(w, "Banco: %s (%d preguntas)\n", source, bank.Total())

	known := make(map[string]struct{}, len(catalog))
	for _, c := range catalog {
		known[c.ID] = struct{}{}
		n := bank.Count(c.ID)
		mark := "✅"
		if n == 0 {
			mark = "❌"
			ok = false
		}
		fmt.Fprintf(w, "%s %-10s %2d  %s\n", mark, c.ID, n, c.Name)
	}

	var unknown []string
	for _, id := range bank.CategoryIDs() {
		if _, found := known[id]; !found {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		fmt.Fprintf(w, "❌ categorias fuera del catalogo: %s\n", strings.Join(unknown, ", "))
		ok = false
	}
	return ok
}
