package app

// BadSample is deliberately inaccessible content: shouting, colour-only
// meaning, a wall of text, vague link text and an image with empty alt.
const BadSample = "KLIK HIER voor MEER INFO over ONS AANBOD!!!<br>" +
	"<img src='https://upload.wikimedia.org/wikipedia/commons/6/65/No-Image-Placeholder.svg' alt='' style='max-width:200px;' /><br/>" +
	"WIJ GEBRUIKEN <span style='color:red'>ROOD</span> VOOR DINGEN DIE BELANGRIJK ZIJN en <span style='color:green'>GROEN</span> voor GOEDKEURING.<br>" +
	"welkom op onze website wij hopen dat u hier alles kunt vinden wat u zoekt onze producten zijn speciaal ontworpen voor mensen die houden van stijl en gemak en comfort tegelijkertijd " +
	"we hebben veel opties en mogelijkheden voor iedereen en we raden u aan om even goed rond te kijken en als u vragen heeft dan kunt u ons altijd contacteren via het formulier dat u op de homepage kunt vinden<br><br>" +
	"ga naar de volgende pagina voor alles wat u moet weten over onze DIENSTEN  klik hier"
