package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dmitrijs2005/billed/internal/client/models"
	"github.com/dmitrijs2005/billed/internal/client/services"
	"github.com/dmitrijs2005/billed/internal/netx"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

// Swapped in tests.
var (
	readFile  = os.ReadFile
	writeFile = os.WriteFile
	download  = func(ctx context.Context, url string) ([]byte, error) {
		return netx.Download(ctx, http.DefaultClient, url)
	}
)

// Bills opens the bill listing.
func (a *App) Bills(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.router.Navigate(models.RouteBills)
	return nil
}

// NewBill opens the new bill form.
func (a *App) NewBill(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.router.Navigate(models.RouteNewBill)
	return nil
}

// Show prints the attachment of one bill.
func (a *App) Show(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	b, err := a.billsService.GetBill(ctx, id)
	if err != nil {
		return err
	}

	if b.FileURL == nil || *b.FileURL == "" {
		fmt.Fprintf(a.out, "%s: pas de justificatif\n", b.ID)
		return nil
	}
	name := ""
	if b.FileName != nil {
		name = *b.FileName
	}
	fmt.Fprintf(a.out, "Justificatif %s\n%s\n", name, *b.FileURL)
	return nil
}

// Download saves the attachment of one bill to path.
func (a *App) Download(ctx context.Context, id, path string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	b, err := a.billsService.GetBill(ctx, id)
	if err != nil {
		return err
	}
	if b.FileURL == nil || *b.FileURL == "" {
		return fmt.Errorf("%s: pas de justificatif", b.ID)
	}

	content, err := download(ctx, *b.FileURL)
	if err != nil {
		return err
	}
	if err := writeFile(path, content, 0o600); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "Justificatif enregistré: %s (%d octets)\n", path, len(content))
	return nil
}

// Render draws pending routes until none is left. Rendering the form can
// itself navigate back to the listing.
func (a *App) Render(ctx context.Context) error {
	for {
		route, ok := a.router.take()
		if !ok {
			return nil
		}

		var err error
		switch route {
		case models.RouteBills:
			err = a.renderBills(ctx)
		case models.RouteNewBill:
			err = a.renderNewBill(ctx)
		case models.RouteLogin:
			fmt.Fprintln(a.out, "Veuillez vous connecter ('login' ou 'register').")
		}
		if err != nil {
			return err
		}
	}
}

func (a *App) renderBills(ctx context.Context) error {
	bills, err := a.billsService.GetBills(ctx)
	if err != nil {
		return fmt.Errorf("mes notes de frais: %w", err)
	}

	fmt.Fprintln(a.out, "Mes notes de frais")
	if len(bills) == 0 {
		fmt.Fprintln(a.out, "(aucune)")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tType\tNom\tDate\tMontant\tStatut\tJustificatif")
	for _, b := range bills {
		file := "-"
		if b.FileName != nil {
			file = *b.FileName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d €\t%s\t%s\n", b.ID, b.Type, b.Name, b.Date, b.Amount, b.Status, file)
	}
	return tw.Flush()
}

func (a *App) renderNewBill(ctx context.Context) error {
	sub := a.newSubmission(a.router)

	fmt.Fprintln(a.out, "Envoyer une note de frais")

	var (
		form services.BillForm
		err  error
	)
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Nom de la dépense", &form.Name},
		{"Date (AAAA-MM-JJ)", &form.Date},
		{"Montant TTC", &form.Amount},
		{"TVA", &form.Vat},
		{"% (20 par défaut)", &form.Pct},
		{"Commentaire", &form.Commentary},
	}

	if form.Type, err = GetChoice(a.reader, "Type de dépense", models.BillTypes, a.out); err != nil {
		return err
	}
	for _, p := range prompts {
		if *p.dst, err = getSimpleText(a.reader, p.label, a.out); err != nil {
			return err
		}
	}

	if err := a.attachFile(ctx, sub); err != nil {
		return err
	}

	if _, err := sub.HandleSubmit(ctx, form); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note de frais envoyée.")
	return nil
}

// attachFile asks for a receipt until an acceptable one is given or the
// answer is empty.
func (a *App) attachFile(ctx context.Context, sub submitter) error {
	for {
		path, err := getSimpleText(a.reader, "Justificatif (jpg, jpeg ou png, vide pour aucun)", a.out)
		if err != nil {
			return err
		}
		if path == "" {
			return nil
		}

		content, err := readFile(path)
		if err != nil {
			fmt.Fprintln(a.out, "Fichier illisible:", err)
			continue
		}

		file := models.BillFile{
			Name:        filepath.Base(path),
			ContentType: http.DetectContentType(content),
			Content:     content,
		}

		err = sub.HandleChangeFile(ctx, file)
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			fmt.Fprintln(a.out, sub.Draft().ErrorMessage)
			continue
		case err != nil:
			fmt.Fprintln(a.out, "Le justificatif n'a pas pu être envoyé.")
		}
		return nil
	}
}
