package document

import (
	"html/template"
	"strings"
)

var templateFuncs = template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}

// ReportTemplate is the HTML preview of a campaign report.
const ReportTemplate = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="UTF-8">
<title>{{.Title}} - {{.ClientName}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { background: #050509; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; }
  #report-preview { background: #09090b; color: #f4f4f5; width: 794px; min-height: 1123px; padding: 32px; margin: 0 auto; }
  header { display: flex; justify-content: space-between; align-items: center; padding-bottom: 24px; margin-bottom: 24px; border-bottom: 1px solid #27272a; }
  .brand { display: flex; align-items: center; gap: 16px; }
  .logo { width: 56px; height: 56px; border-radius: 16px; background: linear-gradient(135deg, #ec4899, #e11d48); color: #fff; font-weight: 700; font-size: 28px; display: flex; align-items: center; justify-content: center; }
  h1 { font-size: 24px; font-weight: 700; color: #fff; }
  h3 { font-size: 14px; font-weight: 600; color: #fff; margin-bottom: 16px; }
  .muted { font-size: 14px; color: #a1a1aa; }
  .client { text-align: right; }
  .client .name { font-size: 18px; font-weight: 700; color: #fff; }
  .status { display: inline-block; font-size: 11px; font-weight: 700; color: #f472b6; background: rgba(236,72,153,.2); border-radius: 10px; padding: 2px 10px; margin-bottom: 4px; }
  .kpis { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; margin-bottom: 16px; }
  .card { background: #18181b; border: 1px solid #27272a; border-radius: 12px; padding: 20px; margin-bottom: 24px; }
  .kpi { background: #18181b; border: 1px solid #27272a; border-radius: 12px; padding: 16px; }
  .kpi .label { font-size: 11px; color: #71717a; text-transform: uppercase; letter-spacing: .05em; margin-bottom: 4px; }
  .kpi .value { font-size: 19px; font-weight: 700; }
  .pies { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; margin-top: 8px; }
  .pies .chart { display: flex; justify-content: center; }
  #recommendations { background: linear-gradient(135deg, #1f0a14, #18181b); border-color: #4a1330; }
  #recommendations p { font-size: 14px; color: #d4d4d8; line-height: 1.6; }
  footer { margin-top: 24px; padding-top: 24px; border-top: 1px solid #27272a; display: flex; justify-content: space-between; font-size: 12px; color: #71717a; }
  footer span + span { margin-left: 16px; }
</style>
</head>
<body>
<div id="report-preview">
  <header>
    <div class="brand">
      <div class="logo">A</div>
      <div>
        <h1>{{.Title}}</h1>
        <p class="muted">{{.Subtitle}}</p>
      </div>
    </div>
    <div class="client">
      {{if .Status}}<span class="status">{{.Status}}</span>{{end}}
      <p class="name">{{.ClientName}}</p>
      <p class="muted">{{.City}}</p>
      {{if .Objective}}<p class="muted objective">{{.Objective}}</p>{{end}}
    </div>
  </header>

  {{range .KPIRows}}
  <section class="kpis">
    {{range .}}
    <div class="kpi">
      <p class="label">{{.Label}}</p>
      <p class="value" style="color: {{.Color}}">{{.Value}}</p>
    </div>
    {{end}}
  </section>
  {{end}}

  <section class="pies">
    <div class="card">
      <h3>Zaangażowanie</h3>
      <div class="chart" id="chart-engagement">{{.EngagementSVG}}</div>
    </div>
    <div class="card">
      <h3>Konwersja do rezerwacji</h3>
      <div class="chart" id="chart-conversion">{{.ConversionSVG}}</div>
    </div>
  </section>

  <section class="card">
    <h3>Zasięg i kliknięcia - trend tygodniowy</h3>
    <div class="chart" id="chart-weekly">{{.WeeklySVG}}</div>
  </section>

  <section class="card">
    <h3>Rezerwacje dzienne</h3>
    <div class="chart" id="chart-daily">{{.DailySVG}}</div>
  </section>

  {{if .Recommendations}}
  <section class="card" id="recommendations">
    <h3>Rekomendacje</h3>
    <p>{{range $i, $line := lines .Recommendations}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
  </section>
  {{end}}

  <footer>
    <div><span>` + agencyPhone + `</span><span>` + agencyEmail + `</span></div>
    <p>` + agencySite + `</p>
  </footer>
</div>
</body>
</html>`

const lightPageStyle = `
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { background: #ffffff; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #18181b; }
  .page { width: 794px; min-height: 1123px; padding: 40px; margin: 0 auto; }
  header { display: flex; justify-content: space-between; align-items: center; padding-bottom: 24px; margin-bottom: 24px; border-bottom: 2px solid #ec4899; }
  .brand { display: flex; align-items: center; gap: 16px; }
  .logo { width: 56px; height: 56px; border-radius: 16px; background: linear-gradient(135deg, #ec4899, #e11d48); color: #fff; font-weight: 700; font-size: 28px; display: flex; align-items: center; justify-content: center; }
  h1 { font-size: 24px; font-weight: 700; }
  .muted { font-size: 14px; color: #71717a; }
  .badge { display: inline-block; padding: 8px 16px; border-radius: 12px; background: linear-gradient(90deg, #ec4899, #f43f5e); color: #fff; font-weight: 700; font-size: 14px; }
  .number { font-size: 18px; font-weight: 700; margin-top: 8px; text-align: right; }
  .box { background: #f9fafb; border: 1px solid #e4e4e7; border-radius: 12px; padding: 20px; }
  .box h3 { font-size: 15px; font-weight: 700; margin-bottom: 12px; }
  .grid2 { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; margin-bottom: 24px; }
  .accent { background: linear-gradient(135deg, #fdf2f8, #fff1f2); border: 1px solid #fbcfe8; border-radius: 12px; padding: 20px; }
  .amount { font-size: 24px; font-weight: 700; color: #db2777; }
  .signatures { display: flex; justify-content: space-between; align-items: flex-end; margin-top: 48px; padding-top: 32px; border-top: 1px solid #e4e4e7; }
  .signature { width: 192px; text-align: center; font-size: 12px; color: #71717a; font-weight: 600; }
  .signature div { height: 64px; border-bottom: 1px solid #d4d4d8; margin-bottom: 8px; }
`

// InvoiceTemplate is the HTML preview of an invoice.
const InvoiceTemplate = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="UTF-8">
<title>{{.Title}} {{.Number}}</title>
<style>` + lightPageStyle + `
  .dates { display: flex; justify-content: space-between; font-size: 13px; margin-bottom: 24px; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 24px; font-size: 13px; }
  th { background: #18181b; color: #fff; text-align: left; padding: 10px 16px; }
  td { padding: 12px 16px; border-bottom: 1px solid #e4e4e7; }
  .right { text-align: right; }
  .summary { width: 320px; margin-left: auto; }
  .summary p { display: flex; justify-content: space-between; font-size: 13px; margin-bottom: 8px; }
  .note { font-size: 12px; color: #71717a; margin-top: 32px; }
</style>
</head>
<body>
<div class="page" id="invoice-preview" data-type="{{.TypeLabel}}">
  <header>
    <div class="brand">
      <div class="logo">A</div>
      <div><h1>` + agencyName + `</h1><p class="muted">Marketing dla salonów beauty</p></div>
    </div>
    <div>
      <span class="badge">{{.Title}}</span>
      <p class="number">{{.Number}}</p>
    </div>
  </header>
  <div class="dates">
    <span>Data wystawienia: {{.IssueDate}}</span>
    <strong>Termin płatności: {{.PaymentDue}}</strong>
  </div>
  <section class="grid2">
    <div class="box" id="seller"><h3>Sprzedawca</h3>{{range .Seller}}<p>{{.}}</p>{{end}}</div>
    <div class="box" id="buyer"><h3>Nabywca</h3>{{range .Buyer}}<p>{{.}}</p>{{end}}</div>
  </section>
  <table>
    <thead><tr><th>Lp.</th><th>Nazwa usługi</th><th class="right">Wartość</th></tr></thead>
    <tbody><tr><td>1</td><td>{{.Description}}</td><td class="right">{{.Value}}</td></tr></tbody>
  </table>
  <div class="accent summary">
    {{if .IsFinal}}
    <p><span>Wartość usługi:</span><span>{{.Value}}</span></p>
    <p class="advance"><span>Zaliczka:</span><span>- {{.Advance}}</span></p>
    {{end}}
    <p><strong>Do zapłaty:</strong><span class="amount" id="amount-due">{{.Due}}</span></p>
  </div>
  <p class="note">{{.VATNote}}</p>
  <div class="signatures">
    <div class="signature"><div></div>Wystawił</div>
    <div class="signature"><div></div>Odebrał</div>
  </div>
</div>
</body>
</html>`

// ContractTemplate is the HTML preview of a contract.
const ContractTemplate = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="UTF-8">
<title>Umowa {{.Number}}</title>
<style>` + lightPageStyle + `
  .title { text-align: center; margin-bottom: 32px; }
  .title h2 { font-size: 22px; font-weight: 700; margin-bottom: 8px; }
  .sections { display: flex; flex-direction: column; gap: 16px; font-size: 14px; color: #3f3f46; }
  .value { display: flex; justify-content: space-between; align-items: center; background: #fff; border: 1px solid #fbcfe8; border-radius: 10px; padding: 16px; margin-bottom: 12px; }
  .protected { font-size: 12px; color: #a1a1aa; }
</style>
</head>
<body>
<div class="page" id="contract-preview">
  <header>
    <div class="brand">
      <div class="logo">A</div>
      <div><h1>` + agencyName + `</h1><p class="muted">Marketing dla salonów beauty</p></div>
    </div>
    <div>
      <span class="badge">UMOWA</span>
      <p class="number">{{.Number}}</p>
    </div>
  </header>
  <section class="title">
    <h2>{{.Title}}</h2>
    <p class="muted" id="sign-date">{{.SignedOn}}</p>
  </section>
  <section class="grid2">
    {{range .Parties}}<div class="box"><h3>{{.Title}}</h3><p>{{.Body}}</p></div>{{end}}
  </section>
  <section class="sections">
    {{range .Sections}}<div class="box"><h3>{{.Title}}</h3><p>{{.Body}}</p></div>{{end}}
    <div class="accent">
      <h3>§3 Wynagrodzenie</h3>
      <div class="value"><span>Wartość umowy:</span><span class="amount" id="contract-value">{{.Value}}</span></div>
      <p>{{.Terms}}</p>
    </div>
  </section>
  <div class="signatures">
    <div class="signature"><div></div>Zleceniobiorca</div>
    <span class="protected">Dokument chroniony</span>
    <div class="signature"><div></div>Zleceniodawca</div>
  </div>
</div>
</body>
</html>`

// PresentationTemplate is the HTML preview of a presentation, all slides stacked.
const PresentationTemplate = `<!DOCTYPE html>
<html lang="pl">
<head>
<meta charset="UTF-8">
<title>Prezentacja - {{.SalonName}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { background: #050509; font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #fff; }
  .slide { width: 1920px; height: 1080px; background: #09090b; margin: 0 auto 24px; padding: 0 80px; display: flex; flex-direction: column; justify-content: center; }
  .slide.centered { align-items: center; text-align: center; }
  .logo { width: 128px; height: 128px; border-radius: 36px; background: linear-gradient(135deg, #ec4899, #e11d48); font-size: 64px; font-weight: 700; display: flex; align-items: center; justify-content: center; margin-bottom: 32px; }
  h1 { font-size: 60px; margin-bottom: 16px; }
  h2 { font-size: 48px; margin-bottom: 32px; }
  .lead { font-size: 24px; color: #a1a1aa; }
  .accent { font-size: 20px; color: #f472b6; margin-top: 16px; }
  .stats { display: grid; gap: 32px; }
  .stat { background: rgba(39,39,42,.5); border: 1px solid #3f3f46; border-radius: 16px; padding: 32px; }
  .stat .value { font-size: 48px; font-weight: 700; color: #ec4899; margin-bottom: 16px; }
  .stat .label { font-size: 20px; color: #d4d4d8; }
  .item { background: rgba(39,39,42,.5); border: 1px solid #3f3f46; border-radius: 12px; padding: 24px; font-size: 24px; margin-bottom: 24px; }
  .case { background: linear-gradient(135deg, #1f0a14, #18181b); border: 1px solid #4a1330; border-radius: 16px; padding: 40px; }
  .offer { background: linear-gradient(90deg, #ec4899, #f43f5e); border-radius: 16px; padding: 40px; }
  .price { font-size: 60px; font-weight: 700; margin: 16px 0 24px; }
  .price span { font-size: 24px; font-weight: 400; }
  .button { background: #ec4899; border-radius: 999px; padding: 16px 32px; font-size: 20px; font-weight: 700; margin-top: 32px; }
</style>
</head>
<body>
{{range .Slides}}
<section class="slide{{if or (eq .Layout "greeting") (eq .Layout "closing")}} centered{{end}}" id="slide-{{.Number}}" data-layout="{{.Layout}}">
  {{if eq .Layout "greeting"}}
    <div class="logo">A</div>
    <h1>{{.Heading}}</h1>
    <p class="lead">{{.Lead}}</p>
    <p class="accent">{{.Accent}}</p>
  {{else if eq .Layout "stats"}}
    <h2>{{.Heading}}</h2>
    <div class="stats" style="grid-template-columns: repeat(3, 1fr)">
      {{range .Stats}}<div class="stat"><p class="value">{{.Value}}</p><p class="label">{{.Label}}</p></div>{{end}}
    </div>
  {{else if eq .Layout "checklist"}}
    <h2>{{.Heading}}</h2>
    {{range .Items}}<p class="item">✓ {{.}}</p>{{end}}
  {{else if eq .Layout "case"}}
    <h2>{{.Heading}}</h2>
    <div class="case">
      <p class="lead">{{.Lead}}</p>
      <div class="stats" style="grid-template-columns: repeat(4, 1fr); margin-top: 24px">
        {{range .Stats}}<div><p class="stat-value">{{.Value}}</p><p class="label">{{.Label}}</p></div>{{end}}
      </div>
    </div>
  {{else if eq .Layout "offer"}}
    <h2>{{.Heading}}</h2>
    <div class="offer">
      <p class="lead" style="color: #fff">{{.Lead}}</p>
      <p class="price">{{.Price}}<span>{{.Accent}}</span></p>
      {{range .Items}}<p>✓ {{.}}</p>{{end}}
    </div>
  {{else}}
    <div class="logo" style="width: 96px; height: 96px">A</div>
    <h2>{{.Heading}}</h2>
    <p class="lead">{{.Lead}}</p>
    <p class="button">{{.Accent}}</p>
  {{end}}
</section>
{{end}}
</body>
</html>`
