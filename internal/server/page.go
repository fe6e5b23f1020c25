package server

// indexPage is the dashboard form. It posts the six raw inputs to
// /predict and renders the formatted prediction inline.
const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>House Price Predictor</title>
  <style>
    body { font-family: sans-serif; max-width: 28rem; margin: 3rem auto; }
    label { display: block; margin-top: 0.75rem; }
    input { width: 100%; padding: 0.3rem; }
    button { margin-top: 1rem; padding: 0.5rem 1.5rem; }
    #result { margin-top: 1rem; font-size: 1.3rem; font-weight: bold; }
    #error { margin-top: 1rem; color: #b00; }
  </style>
</head>
<body>
  <h1>House Price Predictor</h1>
  <form id="predict-form">
    <label>Bedrooms <input name="bedrooms" type="number" step="1" min="0" value="3" required></label>
    <label>Bathrooms <input name="bathrooms" type="number" step="0.25" min="0" value="2" required></label>
    <label>Living area (sqft) <input name="sqft_living" type="number" step="1" min="0" value="1500" required></label>
    <label>Floors <input name="floors" type="number" step="0.5" min="0" value="1" required></label>
    <label>Waterfront (0 or 1) <input name="waterfront" type="number" step="1" min="0" max="1" value="0" required></label>
    <label>View (0&ndash;4) <input name="view" type="number" step="1" min="0" max="4" value="0" required></label>
    <button type="submit">Predict price</button>
  </form>
  <div id="result"></div>
  <div id="error"></div>
  <script>
    document.getElementById("predict-form").addEventListener("submit", async (e) => {
      e.preventDefault();
      const result = document.getElementById("result");
      const error = document.getElementById("error");
      result.textContent = "";
      error.textContent = "";
      try {
        const resp = await fetch("/predict", {
          method: "POST",
          body: new URLSearchParams(new FormData(e.target)),
        });
        const body = await resp.json();
        if (!resp.ok) {
          error.textContent = body.error || "prediction failed";
          return;
        }
        result.textContent = "Predicted price: " + body.formatted;
      } catch (err) {
        error.textContent = "request failed: " + err;
      }
    });
  </script>
</body>
</html>
`
