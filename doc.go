// Package loigen generates Letter of Intent documents: PDFs rendered
// from HTML via headless Chrome, populated DOCX letters built from
// form data, and zip archives bundling batches of PDFs.
//
// # Quick Start
//
// Create a service, run an operation, and close when done:
//
//	svc := loigen.New()
//	defer svc.Close()
//
//	pdf, err := svc.RenderPDF(ctx, "<h1>Hello</h1>")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", pdf, 0644)
//
// Letter generation takes a loosely-typed request; absent fields
// substitute documented defaults and never cause an error:
//
//	data, err := svc.GenerateLetter(ctx, loigen.LetterRequest{
//	    Address:  loigen.Address{Full: "123 Main St"},
//	    AcceptBy: "June 30",
//	})
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := loigen.New(
//	    loigen.WithTimeout(2 * time.Minute),
//	    loigen.WithLogger(logger),
//	)
//
// # Parallel Rendering
//
// Each Service owns at most one browser. For concurrent HTTP traffic,
// use ServicePool to run multiple browser instances:
//
//	pool := loigen.NewServicePool(loigen.ResolvePoolSize(0))
//	defer pool.Close()
//
//	pdf, err := pool.RenderPDF(ctx, html)
package loigen
