package rendering

// Built-in document templates. The views are right-to-left Persian
// documents sized for A4 print output; the stylesheet is shared between
// the invoice and packing-slip fragments so both pages of a combined
// document render with identical typography.

const stylesheetTemplate = `<style>
{{if .FontPath}}@font-face {
  font-family: 'Invoice';
  src: url('{{.FontPath}}');
}
{{end}}* { box-sizing: border-box; }
body {
  direction: rtl;
  font-family: 'Invoice', 'Vazirmatn', Tahoma, sans-serif;
  font-size: 12px;
  color: #1a1a1a;
  margin: 0;
}
.doc-header {
  display: flex;
  justify-content: space-between;
  align-items: flex-start;
  border-bottom: 2px solid #1a1a1a;
  padding-bottom: 8px;
  margin-bottom: 12px;
}
.doc-header h1 {
  font-size: 18px;
  margin: 0;
}
.store {
  text-align: left;
  font-size: 11px;
  line-height: 1.6;
}
.store-name { font-weight: bold; font-size: 13px; }
.meta-row {
  display: flex;
  justify-content: space-between;
  background: #f4f4f4;
  padding: 6px 10px;
  margin-bottom: 12px;
}
.contact-block {
  border: 1px solid #ccc;
  padding: 8px 10px;
  margin-bottom: 12px;
  line-height: 1.8;
}
table.items {
  width: 100%;
  border-collapse: collapse;
  margin-bottom: 12px;
}
table.items th, table.items td {
  border: 1px solid #999;
  padding: 5px 8px;
  text-align: center;
}
table.items th { background: #e8e8e8; }
table.items td.name { text-align: right; }
.totals { width: 45%; margin-right: auto; }
.totals .row {
  display: flex;
  justify-content: space-between;
  padding: 4px 8px;
}
.totals .grand {
  font-weight: bold;
  border-top: 2px solid #1a1a1a;
}
.slip-total {
  font-weight: bold;
  padding: 6px 10px;
  background: #f4f4f4;
}
.shipping-alert {
  border: 2px dashed #b00;
  color: #b00;
  font-weight: bold;
  padding: 6px 10px;
  margin-bottom: 12px;
}
.page-break { page-break-before: always; }
</style>`

const invoiceTemplate = `<div class="invoice">
  <header class="doc-header">
    <h1>فاکتور فروش</h1>
    <div class="store">
      <div class="store-name">{{.Store.Name}}</div>
      <div>{{.Store.Phone}}</div>
      <div>{{.Store.Address}}</div>
    </div>
  </header>
  <div class="meta-row">
    <span>شماره سفارش: {{.Order.ID}}</span>
    <span>تاریخ: {{.JalaliDate}}</span>
    <span>صادرکننده: {{.Issuer}}</span>
  </div>
  {{if not .Order.Billing.IsEmpty}}<div class="contact-block">
    <strong>مشخصات خریدار</strong>
    <div>{{.Order.Billing.FullName}}</div>
    {{with .Order.Billing.Phone}}<div>تلفن: {{.}}</div>{{end}}
    {{with .Order.Billing.Address1}}<div>{{.}}</div>{{end}}
  </div>{{end}}
  <table class="items">
    <thead>
      <tr><th>ردیف</th><th>شرح کالا</th><th>تعداد</th><th>مبلغ (تومان)</th></tr>
    </thead>
    <tbody>
      {{range $i, $item := .Order.LineItems}}<tr>
        <td>{{add1 $i}}</td>
        <td class="name">{{$item.Name}}</td>
        <td>{{$item.Quantity}}</td>
        <td>{{currency $item.Total}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="totals">
    <div class="row"><span>شیوه پرداخت</span><span>{{default "نامشخص" .Order.PaymentMethodTitle}}</span></div>
    <div class="row grand"><span>مبلغ کل</span><span>{{currency .Order.Total}} تومان</span></div>
  </div>
</div>`

const packingSlipTemplate = `{{if .ForcePageBreak}}<div class="page-break"></div>
{{end}}<div class="packing-slip">
  <header class="doc-header">
    <h1>برگه بسته‌بندی</h1>
    <div class="store">
      <div class="store-name">{{.Store.Name}}</div>
    </div>
  </header>
  <div class="meta-row">
    <span>شماره سفارش: {{.Order.ID}}</span>
    <span>تاریخ: {{.JalaliDate}}</span>
  </div>
  {{if .Order.RequiresShipping}}<div class="shipping-alert">این سفارش نیاز به ارسال دارد</div>
  <div class="contact-block">
    <strong>نشانی گیرنده</strong>
    <div>{{.Order.Shipping.FullName}}</div>
    {{with .Order.Shipping.Phone}}<div>تلفن: {{.}}</div>{{end}}
    {{with .Order.Shipping.Address1}}<div>{{.}}</div>{{end}}
    {{with .Order.Shipping.City}}<div>{{.}}{{with $.Order.Shipping.Postcode}} - کد پستی: {{.}}{{end}}</div>{{end}}
  </div>{{end}}
  <table class="items">
    <thead>
      <tr><th>ردیف</th><th>شرح کالا</th><th>تعداد</th></tr>
    </thead>
    <tbody>
      {{range $i, $item := .Order.LineItems}}<tr>
        <td>{{add1 $i}}</td>
        <td class="name">{{$item.Name}}</td>
        <td>{{$item.Quantity}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div class="slip-total">جمع اقلام: {{.TotalItems}}</div>
</div>`
